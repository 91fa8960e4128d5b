package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/picstash/picstash"
)

// apiPrefix is the route prefix for gateway operations; everything outside
// it is handled by the static asset router.
const apiPrefix = "/api"

// imageCacheControl marks fetched objects as long-lived and publicly
// cacheable. Correct because keys are never reused for different content.
const imageCacheControl = "public, max-age=31536000"

// Service is the gateway's view of the gallery core.
type Service interface {
	Upload(ctx context.Context, in picstash.UploadInput, content io.Reader) (picstash.ObjectInfo, error)
	Fetch(ctx context.Context, key string) (picstash.ObjectInfo, io.ReadCloser, error)
	Images(ctx context.Context, q picstash.ListQuery) (picstash.ObjectPage, error)
	Delete(ctx context.Context, key string) error
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// MaxUploadSize caps the upload request body in bytes; 0 means no limit.
	MaxUploadSize int64
	CORS          CORSConfig
	// Assets is the web root served for non-API paths. When nil, non-API
	// paths return 404.
	Assets fs.FS
}

// Handler provides the HTTP gateway for gallery operations.
type Handler struct {
	config  HandlerConfig
	service Service
	metrics *Metrics
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		metrics: defaultMetrics(),
	}
}

// Router returns the gateway's http.Handler: the /api surface plus the
// static asset router for everything else.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(h.metrics.Middleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Route(apiPrefix, func(r chi.Router) {
		r.Post("/upload", h.handleUpload)
		r.Get("/images", h.handleList)
		r.Get("/images/*", h.handleFetch)
		r.Delete("/images/*", h.handleDelete)
	})

	r.Handle("/metrics", promhttp.Handler())

	if h.config.Assets != nil {
		r.NotFound(NewAssetRouter(h.config.Assets).ServeHTTP)
	}

	return r
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if h.config.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer func() { _ = file.Close() }()

	in := picstash.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Metadata:    parseMetadataField(r.FormValue("metadata")),
	}

	info, err := h.service.Upload(r.Context(), in, file)
	if err != nil {
		HandleError(w, err)
		return
	}
	h.metrics.Uploads.Inc()

	imageURL := picstash.ImageURL(requestOrigin(r), info.Key)
	WriteJSON(w, http.StatusOK, UploadResponse{
		Success:  true,
		ImageURL: imageURL,
		ID:       info.Key,
		Variants: []string{imageURL},
	})
}

func (h *Handler) handleFetch(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, apiPrefix+"/images/")

	info, content, err := h.service.Fetch(r.Context(), key)
	if err != nil {
		if errors.Is(err, picstash.ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
		} else {
			HandleError(w, err)
		}
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Cache-Control", imageCacheControl)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	_, _ = io.Copy(w, content)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := picstash.ListQuery{Cursor: r.URL.Query().Get("cursor")}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			query.Limit = max(1, min(1000, parsed))
		}
	}

	page, err := h.service.Images(r.Context(), query)
	if err != nil {
		HandleError(w, err)
		return
	}

	origin := requestOrigin(r)
	images := make([]picstash.GalleryImage, 0, len(page.Items))
	for _, info := range page.Items {
		images = append(images, picstash.NewGalleryImage(info, origin))
	}

	WriteJSON(w, http.StatusOK, ListResponse{Images: images, NextCursor: page.NextCursor})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, apiPrefix+"/images/")

	if err := h.service.Delete(r.Context(), key); err != nil {
		HandleError(w, err)
		return
	}
	h.metrics.Deletes.Inc()

	WriteJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// parseMetadataField decodes the optional metadata form field. The client
// sends a flat JSON object; anything malformed or non-scalar is dropped
// rather than failing the upload.
func parseMetadataField(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}

	meta := make(map[string]string, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case string:
			meta[k] = val
		case float64:
			meta[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			meta[k] = strconv.FormatBool(val)
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// requestOrigin reconstructs the scheme://host prefix of the request,
// honoring X-Forwarded-Proto when running behind a proxy.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host
}
