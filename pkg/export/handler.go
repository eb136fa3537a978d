package export

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"meridian-hq/callisto/pkg/auth"
	"meridian-hq/callisto/pkg/study"
	"meridian-hq/callisto/pkg/telemetry/metrics"
)

// DefaultProduct names the product in archive filenames when no name is
// configured.
const DefaultProduct = "Meridian"

// HandlerConfig carries the tunables of the export endpoint.
type HandlerConfig struct {
	// Product is the product name embedded in archive filenames.
	Product string

	// PageSize is the batch window for collection scans. Zero selects
	// DefaultPageSize.
	PageSize int

	// Next handles requests that name no format (path "/"). When nil such
	// requests receive 404 like any other unknown path.
	Next http.Handler

	// Metrics receives job and record observations when non-nil.
	Metrics *metrics.ExportMetrics

	// Clock supplies the job start time. Defaults to time.Now; tests pin
	// it for deterministic archive names.
	Clock func() time.Time
}

// Handler is the export endpoint. It authorizes the request, selects the
// output format from the path suffix, and streams a zip archive containing
// one member per entity kind, assembled page by page so memory stays
// bounded regardless of collection size.
type Handler struct {
	storage    study.Storage
	authorizer auth.Authorizer
	config     HandlerConfig
	logger     *slog.Logger
}

// NewHandler creates the export endpoint handler.
func NewHandler(storage study.Storage, authorizer auth.Authorizer, cfg *HandlerConfig) *Handler {
	config := HandlerConfig{}
	if cfg != nil {
		config = *cfg
	}
	if config.Product == "" {
		config.Product = DefaultProduct
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	return &Handler{
		storage:    storage,
		authorizer: authorizer,
		config:     config,
		logger:     slog.Default().With("component", "export"),
	}
}

// ServeHTTP implements the endpoint protocol. The handler is mounted
// behind a path prefix, so the paths it sees are "/", "/.csv" and
// "/.json". Unauthorized requests receive 403 with an empty body before
// any format dispatch.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorizer.Authorize(r) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch strings.TrimPrefix(r.URL.Path, "/") {
	case "." + FormatCSV.Extension():
		h.export(w, r, FormatCSV)
	case "." + FormatJSON.Extension():
		h.export(w, r, FormatJSON)
	case "":
		if h.config.Next != nil {
			h.config.Next.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

// export runs one job to completion, cancellation, or failure.
func (h *Handler) export(w http.ResponseWriter, r *http.Request, format Format) {
	job := NewJob(h.config.Product, format, h.config.Clock())
	logger := h.logger.With("job_id", job.ID, "format", string(format))

	// The request context closes when the client disconnects. The flag is
	// observed at page boundaries, so a disconnect mid-archive stops the
	// job without finalizing the stream.
	go func() {
		<-r.Context().Done()
		if !job.Finished() {
			job.Cancel()
			logger.Info("export request cancelled")
		}
	}()

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": job.ArchiveName + ".zip",
	})
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", "application/zip")
	w.WriteHeader(http.StatusOK)

	logger.Info("export started", "archive", job.ArchiveName)

	pipeline := &Pipeline{
		Storage:  h.storage,
		PageSize: h.config.PageSize,
	}
	if h.config.Metrics != nil {
		pipeline.OnKind = h.config.Metrics.ObserveRecords
	}

	bytes, err := pipeline.Run(r.Context(), job, w)
	job.Finish()

	switch {
	case err == nil:
		logger.Info("export completed",
			"archive", job.ArchiveName,
			"bytes", bytes,
			"duration", time.Since(job.StartedAt).String(),
		)
		h.observeJob(job, "completed", bytes)
	case errors.Is(err, context.Canceled) || job.Cancelled():
		logger.Info("export stopped", "bytes", bytes)
		h.observeJob(job, "cancelled", bytes)
	default:
		// No archive finalize happened: the truncated stream tells the
		// client the download is invalid.
		logger.Error("export failed", "error", err, "bytes", bytes)
		h.observeJob(job, "failed", bytes)
	}
}

func (h *Handler) observeJob(job *Job, status string, bytes int64) {
	if h.config.Metrics != nil {
		h.config.Metrics.ObserveJob(string(job.Format), status, time.Since(job.StartedAt), bytes)
	}
}
