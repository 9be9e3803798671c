package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/guillermoBallester/hzmeta/internal/core/domain"
	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// lister produces one metadata result for a request.
type lister func(r *http.Request) (*domain.FixedRowSet, error)

// handleHealth returns a liveness probe handler. Always responds 200 if the
// server process is running.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) handleRowSet(list lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := list(r)
		if err != nil {
			s.logger.Error("metadata request failed",
				slog.String("path", r.URL.Path),
				slog.String("request_id", chimw.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			)
			msg := "internal error"
			if errors.Is(err, domain.ErrTypeMapping) {
				msg = err.Error()
			}
			writeError(w, http.StatusInternalServerError, msg)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

func (s *Server) handleInfo(metadata *service.MetadataService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metadata.Info())
	}
}

func staticLister(list func(context.Context) (*domain.FixedRowSet, error)) lister {
	return func(r *http.Request) (*domain.FixedRowSet, error) {
		return list(r.Context())
	}
}

func tablesLister(metadata *service.MetadataService) lister {
	return func(r *http.Request) (*domain.FixedRowSet, error) {
		q := r.URL.Query()
		return metadata.ListTables(r.Context(), domain.TableFilter{
			Catalog: q.Get("catalog"),
			Schema:  q.Get("schema"),
			Table:   q.Get("table"),
			Types:   splitTypes(q["type"]),
		})
	}
}

func columnsLister(metadata *service.MetadataService) lister {
	return func(r *http.Request) (*domain.FixedRowSet, error) {
		q := r.URL.Query()
		return metadata.ListColumns(r.Context(), domain.ColumnFilter{
			Catalog: q.Get("catalog"),
			Schema:  q.Get("schema"),
			Table:   q.Get("table"),
			Column:  q.Get("column"),
		})
	}
}

// splitTypes accepts both repeated type= parameters and comma-separated lists.
func splitTypes(values []string) []string {
	var types []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}
	return types
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
