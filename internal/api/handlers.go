// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/surtd/internal/index"
	xglog "github.com/ManuGH/surtd/internal/log"
	"github.com/ManuGH/surtd/internal/metrics"
	"github.com/ManuGH/surtd/internal/surt"
)

// batchWorkers bounds transform parallelism per batch request.
const batchWorkers = 8

type surtRequest struct {
	URL     string          `json:"url"`
	Options map[string]bool `json:"options,omitempty"`
}

type surtResponse struct {
	Output string    `json:"output,omitempty"`
	Error  *apiError `json:"error,omitempty"`
}

type batchRequest struct {
	URLs    []string        `json:"urls"`
	Options map[string]bool `json:"options,omitempty"`
}

type batchResponse struct {
	Results []surtResponse `json:"results"`
}

type putIndexRequest struct {
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Digest string `json:"digest,omitempty"`
}

type scanResponse struct {
	Records []index.Record `json:"records"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, surtResponse{Error: &apiError{Kind: "bad_request", Detail: detail}})
}

// requestOptions overlays per-request toggles onto the server's base
// option set. Unknown names are rejected rather than silently ignored.
func (s *Server) requestOptions(overrides map[string]bool) (*surt.Options, error) {
	if len(overrides) == 0 {
		return s.opts, nil
	}
	opts := s.opts.Clone()
	for name, value := range overrides {
		if !surt.Known(name) {
			return nil, errors.New("unknown option " + strconv.Quote(name))
		}
		opts.Set(name, value)
	}
	return opts, nil
}

// transform runs one instrumented transform.
func (s *Server) transform(rawURL string, opts *surt.Options) surtResponse {
	start := time.Now()
	out, err := surt.SurtWithOptions(rawURL, opts)
	if err != nil {
		kind := errorKind(err)
		metrics.ObserveTransform(time.Since(start), kind)
		s.logger.Debug().
			Str(xglog.FieldURL, rawURL).
			Str(xglog.FieldErrorKind, kind).
			Msg("transform failed")
		e := transformError(err)
		return surtResponse{Error: &e}
	}
	metrics.ObserveTransform(time.Since(start), "")
	return surtResponse{Output: out}
}

// handleSurt transforms a single URL. Malformed URLs are data, not server
// faults: they come back as 422 with a structured error.
func (s *Server) handleSurt(w http.ResponseWriter, r *http.Request) {
	var req surtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	opts, err := s.requestOptions(req.Options)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	resp := s.transform(req.URL, opts)
	if resp.Error != nil {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBatch transforms many URLs in parallel. The response always has
// one result per input URL, in input order; individual failures do not
// fail the batch.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if len(req.URLs) == 0 {
		writeBadRequest(w, "urls must not be empty")
		return
	}
	if len(req.URLs) > s.cfg.MaxBatch {
		writeBadRequest(w, "batch exceeds maxBatch ("+strconv.Itoa(s.cfg.MaxBatch)+")")
		return
	}
	opts, err := s.requestOptions(req.Options)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	metrics.ObserveBatch(len(req.URLs))

	results := make([]surtResponse, len(req.URLs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchWorkers)
	for i, rawURL := range req.URLs {
		i, rawURL := i, rawURL
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.transform(rawURL, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only context cancellation lands here; the client is gone.
		logger := xglog.WithContext(r.Context(), s.logger)
		logger.Warn().Err(err).Msg("batch aborted")
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// handlePutIndex stores one capture record.
func (s *Server) handlePutIndex(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, surtResponse{Error: &apiError{Kind: "index_disabled"}})
		return
	}
	var req putIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	rec, err := s.store.Put(r.Context(), index.Record{
		URL:    req.URL,
		Status: req.Status,
		Digest: req.Digest,
	})
	if err != nil {
		var pe *surt.ParseError
		if errors.As(err, &pe) {
			e := transformError(err)
			writeJSON(w, http.StatusUnprocessableEntity, surtResponse{Error: &e})
			return
		}
		writeJSON(w, http.StatusInternalServerError, surtResponse{Error: &apiError{Kind: "internal"}})
		return
	}
	logger := xglog.WithContext(r.Context(), s.logger)
	logger.Debug().
		Str(xglog.FieldRecordID, rec.ID).
		Str(xglog.FieldKey, rec.SURT).
		Msg("record stored")
	writeJSON(w, http.StatusCreated, rec)
}

// handleScanIndex lists records by SURT key prefix or URL.
func (s *Server) handleScanIndex(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, surtResponse{Error: &apiError{Kind: "index_disabled"}})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.store.ScanPrefix(r.Context(), r.URL.Query().Get("prefix"), limit)
	if err != nil {
		var pe *surt.ParseError
		if errors.As(err, &pe) {
			e := transformError(err)
			writeJSON(w, http.StatusUnprocessableEntity, surtResponse{Error: &e})
			return
		}
		writeJSON(w, http.StatusInternalServerError, surtResponse{Error: &apiError{Kind: "internal"}})
		return
	}
	if records == nil {
		records = []index.Record{}
	}
	writeJSON(w, http.StatusOK, scanResponse{Records: records})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
