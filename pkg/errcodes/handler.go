package errcodes

import (
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

// HTMLRenderer renders an error page for browser-facing routes. It's injected
// by the server package to avoid an import cycle with the page templates.
type HTMLRenderer func(c echo.Context, httpCode int, message string) error

type Handler struct {
	renderHTML HTMLRenderer
}

func NewHandler(renderHTML HTMLRenderer) *Handler {
	return &Handler{renderHTML: renderHTML}
}

// Handle is an Echo error handler that maps typed errors onto HTTP responses.
// Page routes get a rendered error page; everything else gets the JSON shape.
// Any generic error is interpreted as an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	if errutils.IsIgnorableErr(err) {
		logger.FromEchoContext(c).Err(err).Warn("broken pipe")
		return
	}

	httpCode, code, msg := h.resolve(err)

	if httpCode == http.StatusInternalServerError {
		logger.FromEchoContext(c).Err(err).Error("server error")
	}

	if h.renderHTML != nil && wantsHTML(c) {
		if err := h.renderHTML(c, httpCode, msg); err == nil {
			return
		}
		// fall through to JSON if the error page itself failed to render
	}

	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"code":        code,
			"message":     msg,
			"status_code": httpCode,
		},
	}
	if err := c.JSON(httpCode, payload); err != nil {
		logger.FromEchoContext(c).Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) resolve(err error) (int, string, string) {
	code := ""
	msg := ""
	httpCode := http.StatusInternalServerError

	// Echo errors
	var he *echo.HTTPError
	if ok := errors.As(err, &he); ok {
		httpCode = he.Code
		if s, sok := he.Message.(string); sok {
			msg = s
		} else {
			msg = http.StatusText(he.Code)
		}
		code = strcase.ToSnake(msg)
	}

	// Custom errors
	var e *Error
	if ok := errors.As(err, &e); ok {
		httpCode = e.HTTPCode
		code = e.Code
		msg = e.Message
	}

	if httpCode == http.StatusInternalServerError && msg == "" {
		code = "internal_server_error"
		msg = "Internal Server Error"
	}

	return httpCode, code, msg
}

func wantsHTML(c echo.Context) bool {
	if strings.HasPrefix(c.Path(), "/api") {
		return false
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return accept == "" || strings.Contains(accept, echo.MIMETextHTML) || strings.Contains(accept, "*/*")
}
