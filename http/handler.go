package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sagarc03/schedsync"
)

const downloadPrefix = "/download/"

type Service interface {
	List(ctx context.Context) (schedsync.ListResult, error)
	Upload(ctx context.Context, req schedsync.UploadRequest) (schedsync.UploadResult, error)
	Download(ctx context.Context, filename string) (schedsync.Object, error)
	Describe() schedsync.ServiceDescription
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"min=0"`
}

func (c CORSConfig) restrictsOrigins() bool {
	if len(c.AllowedOrigins) == 0 {
		return false
	}
	return !(len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*")
}

type HandlerConfig struct {
	CORS CORSConfig
	// MaxUploadSize caps the upload request body in bytes. 0 means no limit.
	MaxUploadSize int64
	// Middlewares run outside every other layer, e.g. metrics instrumentation.
	Middlewares []func(http.Handler) http.Handler
}

// Handler provides HTTP handlers for document sync operations.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// handlerFunc is a route handler that reports faults by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle is the single boundary where route errors become responses.
func handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			HandleError(w, err)
		}
	}
}

// Router returns an http.Handler with all routes configured.
//
//	OPTIONS *                 empty 200
//	GET     /list             stored keys
//	POST    /upload           write an allow-listed document
//	GET     /download/{name}  raw document body
//	GET     /                 service description
//
// Any other method or path is answered with 404.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	for _, mw := range h.config.Middlewares {
		r.Use(mw)
	}
	r.Use(RequestLogger)
	r.Use(CORSMiddleware(h.config.CORS))
	r.Use(Recoverer)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleNotFound)

	r.Options("/", h.handleOptions)
	r.Options("/*", h.handleOptions)

	r.Get("/", handle(h.handleDescribe))
	r.Get("/list", handle(h.handleList))
	r.Post("/upload", handle(h.handleUpload))
	r.Get(downloadPrefix+"*", handle(h.handleDownload))

	return r
}

func (h *Handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MsgRouteNotFound)
}

func (h *Handler) handleOptions(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleDescribe(w http.ResponseWriter, _ *http.Request) error {
	return WriteJSON(w, http.StatusOK, h.service.Describe())
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) error {
	result, err := h.service.List(r.Context())
	if err != nil {
		return err
	}

	return WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) error {
	body := r.Body
	if h.config.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	req, err := decodeUpload(body)
	if err != nil {
		return err
	}

	result, err := h.service.Upload(r.Context(), req)
	if err != nil {
		return err
	}

	return WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) error {
	filename := strings.TrimPrefix(r.URL.EscapedPath(), downloadPrefix)

	obj, err := h.service.Download(r.Context(), filename)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", schedsync.JSONContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Body)))
	if obj.ETag != "" {
		w.Header().Set("ETag", `"`+obj.ETag+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Body)

	return nil
}
