package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/petedyestory/tapedeck/pkg/sitedata"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"humanizeVideo": sitedata.HumanizeVideoName,
	"humanizeSlug":  sitedata.HumanizeSlug,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"derefFloat": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
	"formatDuration": func(seconds float64) string {
		total := int(seconds)
		m := total / 60
		s := total % 60
		return fmt.Sprintf("%d:%02d", m, s)
	},
	// jsonAttr serializes a value for embedding in a data attribute or inline
	// script tag.
	"jsonAttr": func(v interface{}) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", errors.WithStack(err)
		}
		return template.JS(data), nil //nolint:gosec
	},
}

// Renderer implements echo.Renderer. Each page template is parsed together
// with the shared base layout, so pages only define their "title" and
// "content" blocks.
type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"home",
	"archive",
	"act",
	"characters",
	"character",
	"video",
	"timeline",
	"outline",
	"player",
	"error",
}

func NewRenderer() (*Renderer, error) {
	pages := map[string]*template.Template{}
	for _, name := range pageNames {
		t, err := template.New("base.html.tmpl").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/base.html.tmpl", "templates/"+name+".html.tmpl")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %q", name)
	}
	return errors.WithStack(t.ExecuteTemplate(w, "base.html.tmpl", data))
}
