package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/pipeline"
)

// CacheHeader reports whether a render was served from cache.
const CacheHeader = "X-Cache"

// renderRequest is the JSON body of POST /v1/render.
type renderRequest struct {
	Street  string `json:"street"`
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("street") {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "missing street parameter"))
		return
	}
	s.render(w, r, pipeline.Options{
		Descriptor: q.Get("street"),
		Format:     q.Get("format"),
	})
}

func (s *Server) handleRenderBody(w http.ResponseWriter, r *http.Request) {
	mediaType := "text/plain"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeUnsupported, err, "content type %q", ct))
			return
		}
		mediaType = mt
	}

	var opts pipeline.Options
	switch mediaType {
	case "application/json":
		var req renderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			s.writeError(w, r, bodyError(err))
			return
		}
		opts = pipeline.Options{Descriptor: req.Street, Format: req.Format, Refresh: req.Refresh}
	case "text/plain":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, r, bodyError(err))
			return
		}
		line, _, _ := strings.Cut(string(body), "\n")
		opts = pipeline.Options{Descriptor: line, Format: r.URL.Query().Get("format")}
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "content type %q (want application/json or text/plain)", mediaType))
		return
	}
	s.render(w, r, opts)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if opts.Format == "" {
		opts.Format = s.cfg.Format
	}
	opts.TTL = s.cfg.TTL
	opts.Limits = s.cfg.Limits

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.loggerFrom(r.Context()).Debug("rendered",
		"elements", len(res.Scene.Elements()), "width", res.Scene.Width(), "height", res.Scene.Height(),
		"cache_hit", res.CacheHit)

	if res.CacheHit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[res.Format])
	w.WriteHeader(http.StatusOK)
	w.Write(res.Output)
}
