package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/petedyestory/tapedeck/pkg/acts"
	"github.com/petedyestory/tapedeck/pkg/assets"
	"github.com/petedyestory/tapedeck/pkg/categories"
	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/revalidate"
	"github.com/petedyestory/tapedeck/pkg/sitedata"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/uptrace/bun"
)

// RegisterRoutes wires up every page route plus the cache-refresh endpoint.
// It returns an error-page renderer for the server's HTTP error handler so
// browser-facing failures get the same chrome as the rest of the site.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) (ErrorPageRenderer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	store, err := sitedata.Load(cfg.Site.DataDir)
	if err != nil {
		return nil, err
	}

	h := &handler{
		actService:   acts.NewService(db),
		videoService: videos.NewService(db),
		clipService:  clips.NewService(db),
		store:        store,
		resolver:     assets.NewResolver(cfg.Site),
		classifier:   categories.NewClassifier(categories.DefaultGroups(), categories.DefaultPeople()),
		cache:        revalidate.New(cfg.Site.CacheTTL),
		outline:      NewOutline(cfg.Site.OutlinePath),
	}

	registerStaticRoutes(e)

	e.GET("/", h.home)
	e.GET("/archive", h.archive)
	e.GET("/acts/:id", h.act)
	e.GET("/characters", h.characters)
	e.GET("/characters/:name", h.character)
	e.GET("/videos/:slug", h.video)
	e.GET("/timeline", h.timeline)
	e.GET("/outline", h.outlinePage)
	e.GET("/player", h.player)
	e.POST("/api/refresh", h.refresh)

	return renderErrorPage, nil
}

// ErrorPageRenderer matches errcodes.HTMLRenderer without importing it.
type ErrorPageRenderer func(c echo.Context, httpCode int, message string) error

func renderErrorPage(c echo.Context, httpCode int, message string) error {
	heading := http.StatusText(httpCode)
	if httpCode == http.StatusNotFound {
		heading = "Not Found"
	}
	return c.Render(httpCode, "error", map[string]interface{}{
		"Heading": heading,
		"Message": message,
	})
}
