package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"github.com/starfederation/datastar-go/datastar"
)

var errBadRequest = errors.New("bad request")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// searchHit is one search result.
type searchHit struct {
	*natives.Native
	Match string `json:"match"`
}

// namespaceInfo is one entry of the namespace listing.
type namespaceInfo struct {
	Name    string `json:"name"`
	Natives int    `json:"natives"`
}

// languageInfo describes a registered generator.
type languageInfo struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Extension string   `json:"extension"`
	Aliases   []string `json:"aliases"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, natives.ErrNotFound), errors.Is(err, generator.ErrUnknownLanguage):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeCode(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(code))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	db, version := s.Database()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"natives": db.Len(),
		"version": version,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	db, _ := s.Database()
	writeJSON(w, http.StatusOK, db.Stats())
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	gens := generator.All()
	out := make([]languageInfo, 0, len(gens))
	for _, g := range gens {
		aliases := generator.Aliases(g.Name())
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, languageInfo{Name: g.Name(), Label: g.Label(), Extension: g.Extension(), Aliases: aliases})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := natives.SearchOptions{Limit: s.searchLimit}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, fmt.Errorf("%w: invalid limit %q", errBadRequest, v))
			return
		}
		opts.Limit = limit
	}
	if v := q.Get("comments"); v != "" {
		comments, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid comments %q", errBadRequest, v))
			return
		}
		opts.Comments = comments
	}

	db, _ := s.Database()
	results := db.Search(q.Get("q"), opts)
	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, searchHit{Native: res.Native, Match: res.Match()})
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handleNative(w http.ResponseWriter, r *http.Request) {
	db, _ := s.Database()
	n, err := db.Lookup(chi.URLParam(r, "native"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleNativeCode(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.codeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	db, _ := s.Database()
	n, err := db.Lookup(chi.URLParam(r, "native"))
	if err != nil {
		writeError(w, err)
		return
	}

	code, err := generator.RenderNative(g, n, opts)
	if err != nil {
		s.logger.Error("generate failed", "native", n.DisplayName(), "language", g.Name(), "error", err)
		writeError(w, err)
		return
	}
	writeCode(w, code)
}

func (s *Server) handleNamespaces(w http.ResponseWriter, _ *http.Request) {
	db, _ := s.Database()
	out := make([]namespaceInfo, 0, len(db.Namespaces()))
	for _, ns := range db.Namespaces() {
		out = append(out, namespaceInfo{Name: ns.Name, Natives: len(ns.Natives)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNamespaceCode(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.codeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	db, _ := s.Database()
	ns, err := db.Namespace(chi.URLParam(r, "namespace"))
	if err != nil {
		writeError(w, err)
		return
	}

	code, err := generator.RenderNamespace(g, ns, opts)
	if err != nil {
		s.logger.Error("generate failed", "namespace", ns.Name, "language", g.Name(), "error", err)
		writeError(w, err)
		return
	}
	writeCode(w, code)
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	db, _ := s.Database()
	writeJSON(w, http.StatusOK, db.Types())
}

func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	db, _ := s.Database()
	users, err := db.UsingType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleEvents streams a signal patch after every reload.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	client := uuid.NewString()

	// Subscribe to updates
	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)
	s.logger.Debug("events client connected", "client", client)
	defer s.logger.Debug("events client disconnected", "client", client)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			db, version := s.Database()
			if err := sse.MarshalAndPatchSignals(map[string]any{
				"natives": db.Len(),
				"version": version,
			}); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// codeRequest resolves the generator and options of a code request.
// Query parameters lang, comments, hashes, one_line, unnamed and indent
// override the server defaults.
func (s *Server) codeRequest(r *http.Request) (generator.Generator, generator.Options, error) {
	q := r.URL.Query()
	opts := s.options

	lang := q.Get("lang")
	if lang == "" {
		lang = s.language
	}
	g, err := generator.Lookup(lang)
	if err != nil {
		return nil, opts, err
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"comments", &opts.Comments},
		{"hashes", &opts.Hashes},
		{"one_line", &opts.OneLineFunctions},
		{"unnamed", &opts.Unnamed},
	}
	for _, f := range flags {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, fmt.Errorf("%w: invalid %s %q", errBadRequest, f.key, v)
		}
		*f.dst = b
	}

	if v := q.Get("indent"); v != "" {
		indent, err := parseIndent(v)
		if err != nil {
			return nil, opts, err
		}
		opts.Indent = indent
	}

	return g, opts, nil
}

// parseIndent accepts "tab" or a number of spaces.
func parseIndent(v string) (string, error) {
	if strings.EqualFold(v, "tab") {
		return "\t", nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 16 {
		return "", fmt.Errorf("%w: invalid indent %q", errBadRequest, v)
	}
	return strings.Repeat(" ", n), nil
}
