package api

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/truest-construction/site-backend/site"
)

// pageWriter renders server-side HTML pages with an explicit status.
type pageWriter struct {
	renderer *site.Renderer
	logger   zerolog.Logger
}

func (p pageWriter) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, page, title, r.URL.Path, content); err != nil {
		p.logger.Error().Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		p.logger.Error().Err(err).Msg("error writing page")
	}
}

func (p pageWriter) notFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, site.PageNotFound, "Page Not Found", nil)
}
