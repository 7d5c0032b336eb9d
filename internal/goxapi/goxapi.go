// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package goxapi exposes the parser as a JSON-over-HTTP service. A parse
// request carries source text and gets back either the AST document or the
// errors document; clean results are cached in a docstore keyed by source
// hash.
package goxapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/goxlang/gox/internal/docstore"
	"github.com/goxlang/gox/lang/astjson"
	"github.com/goxlang/gox/lang/diag"
	"github.com/goxlang/gox/lang/parser"
)

// maxRequestContentLength bounds the accepted source size.
const maxRequestContentLength = 5 * 1024 * 1024

// shutdownTimeout is how long a draining server waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

var errSourceTooLarge = errors.New("source exceeds maximum request size")

// Server holds the parse API state. A nil store disables caching.
type Server struct {
	store   *docstore.Store
	version string
	log     *log.Logger
}

// New creates an API server. logOutput receives one access-log line per
// request; nil discards them.
func New(store *docstore.Store, version string, logOutput io.Writer) *Server {
	if logOutput == nil {
		logOutput = io.Discard
	}
	return &Server{
		store:   store,
		version: version,
		log:     log.New(logOutput, "", log.LstdFlags),
	}
}

// Handler builds the HTTP handler: routes, request-id middleware and, when
// corsDomains is non-empty, a CORS layer restricted to those origins.
func (s *Server) Handler(corsDomains []string) http.Handler {
	router := httprouter.New()
	router.POST("/parse", s.handleParse)
	router.GET("/health", s.handleHealth)
	router.GET("/version", s.handleVersion)
	return newCORSHandler(s.withRequestID(router), corsDomains)
}

// ListenAndServe runs the API on addr until ctx is canceled, then drains
// in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string, corsDomains []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(corsDomains),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(drainCtx)
	})
	return g.Wait()
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// parseRequest is the JSON body of POST /parse. A non-JSON body is taken as
// the source text itself.
type parseRequest struct {
	Source string `json:"source"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	src, err := readSource(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errSourceTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	if s.store != nil {
		if doc, ok := s.store.Get(src); ok {
			w.Header().Set("X-Cache", "hit")
			s.writeDoc(w, http.StatusOK, doc)
			return
		}
	}

	sink := diag.NewSink()
	prog := parser.ParseSource(src, sink)
	doc, err := astjson.MarshalResult(prog, sink)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sink.HasErrors() {
		s.writeDoc(w, http.StatusUnprocessableEntity, doc)
		return
	}

	if s.store != nil {
		s.store.Put(src, doc)
	}
	s.writeDoc(w, http.StatusOK, doc)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// readSource extracts the source text from a parse request.
func readSource(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestContentLength+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxRequestContentLength {
		return "", errSourceTooLarge
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req parseRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return "", fmt.Errorf("invalid request body: %v", err)
		}
		return req.Source, nil
	}
	return string(body), nil
}

func (s *Server) writeDoc(w http.ResponseWriter, status int, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(doc)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	doc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeDoc(w, status, doc)
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// withRequestID tags every request with a UUID, echoed in the X-Request-Id
// header and the access-log line. A caller-supplied id is kept.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Printf("%s %s status=%d dur=%v id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), id)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// newCORSHandler wraps h with a CORS layer. An empty origin list leaves CORS
// disabled entirely.
func newCORSHandler(h http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		return h
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})
	return c.Handler(h)
}
