package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/andyhawks/dkan2/metastore"
)

// DocService produces the catalog's documentation documents.
type DocService interface {
	DatasetSpecific(ctx context.Context, identifier string) (*openapi3.T, error)
	Full(ctx context.Context) (*openapi3.T, error)
}

// Server exposes the documentation endpoints over HTTP.
type Server struct {
	router *mux.Router
	docs   DocService
	log    *logrus.Logger
}

func New(docs DocService, log *logrus.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		docs:   docs,
		log:    log,
	}

	s.router.Use(s.logRequests)
	s.router.HandleFunc("/api/1/docs", s.handleFullDocs).Methods(http.MethodGet)
	s.router.HandleFunc("/api/1/metastore/schemas/dataset/items/{identifier}/docs", s.handleDatasetDocs).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.log.Infof("listening on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleFullDocs(w http.ResponseWriter, r *http.Request) {
	doc, err := s.docs.Full(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDoc(w, doc)
}

func (s *Server) handleDatasetDocs(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	doc, err := s.docs.DatasetSpecific(r.Context(), identifier)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDoc(w, doc)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) writeDoc(w http.ResponseWriter, doc *openapi3.T) {
	data, err := json.Marshal(doc)
	if err != nil {
		s.log.Errorf("marshaling docs: %v", err)
		http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, metastore.ErrNotFound) {
		status = http.StatusNotFound
	}

	s.log.WithFields(logrus.Fields{
		"path":   r.URL.Path,
		"status": status,
	}).Errorf("request failed: %v", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
