package web

import (
	"bytes"
	"context"
	"html/template"
	"os"

	"github.com/petedyestory/tapedeck/pkg/revalidate"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Outline renders the film outline markdown document to HTML. The rendered
// page is cached alongside the playlist so edits to the file show up within
// the revalidation window without a restart.
type Outline struct {
	path string
	md   goldmark.Markdown
}

func NewOutline(path string) *Outline {
	return &Outline{
		path: path,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (o *Outline) HTML(ctx context.Context, cache *revalidate.Cache) (template.HTML, error) {
	return revalidate.Fetch(ctx, cache, "outline", func(ctx context.Context) (template.HTML, error) {
		src, err := os.ReadFile(o.path)
		if err != nil {
			return "", errors.WithStack(err)
		}
		buf := bytes.Buffer{}
		if err := o.md.Convert(src, &buf); err != nil {
			return "", errors.WithStack(err)
		}
		return template.HTML(buf.String()), nil //nolint:gosec
	})
}
