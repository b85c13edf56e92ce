package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/textspot/internal/version"
	_ "golang.org/x/image/bmp"
)

const (
	formatJSON = "json"
	formatText = "text"
	formatCSV  = "csv"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("encoding health response", "error", err)
	}
}

// spotImageHandler runs the pipeline on an uploaded image.
func (s *Server) spotImageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := s.cfg.MaxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxBytes {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}
	uploadSizeBytes.Observe(float64(header.Size))

	imageData, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.TimeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	res, err := s.pipeline.Detect(ctx, img)
	if err != nil {
		spotRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Spotting failed: %v", err), http.StatusInternalServerError)
		return
	}
	spotRequestsTotal.WithLabelValues("http", "success").Inc()
	spotProcessingDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	spotRegionsAccepted.WithLabelValues("http").Observe(float64(len(res.Regions)))

	format := r.FormValue("format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}
	switch format {
	case formatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, res.ToPlainText())
	case formatCSV:
		out, err := res.ToCSV()
		if err != nil {
			s.writeErrorResponse(w, "Failed to render CSV", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, out)
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(SpotResponse{Success: true, Result: res}); err != nil {
			slog.Error("encoding spot response", "error", err)
		}
	}
}

// thresholdHandler reads or updates the acceptance threshold at runtime.
func (s *Server) thresholdHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ThresholdResponse{Threshold: s.pipeline.ScoreThreshold()})
	case http.MethodPost:
		var req ThresholdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorResponse(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := s.pipeline.SetScoreThreshold(req.Threshold); err != nil {
			s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Info("score threshold updated", "threshold", req.Threshold)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ThresholdResponse{Threshold: req.Threshold})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
