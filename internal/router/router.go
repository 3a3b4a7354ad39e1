package router

import (
	"io"
	"net/http"
	"strings"

	"github.com/pr-poehali-dev/food-delivery-django/internal/handler"
	"github.com/pr-poehali-dev/food-delivery-django/models"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/database"
	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

const (
	dishesPath = "/api/v1/dishes"
	ordersPath = "/api/v1/orders"
)

// requestHandler is the envelope contract both resource handlers satisfy
type requestHandler interface {
	Handle(req models.Request) models.Response
}

// NewRouter wires both resources and the health endpoint onto a mux.
// Each HTTP request is converted into the generic request envelope and
// the returned envelope is written back verbatim.
func NewRouter(dishHandler *handler.DishHandler, orderHandler *handler.OrderHandler, db *database.DB, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc(dishesPath, adapt(dishHandler, dishesPath, log))
	mux.HandleFunc(dishesPath+"/", adapt(dishHandler, dishesPath, log))
	mux.HandleFunc(ordersPath, adapt(orderHandler, ordersPath, log))
	mux.HandleFunc(ordersPath+"/", adapt(orderHandler, ordersPath, log))
	mux.HandleFunc("/health", healthHandler(db, log))

	return mux
}

// adapt converts net/http traffic to and from the request envelope
func adapt(h requestHandler, basePath string, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "path", r.URL.Path, "error", err)
			http.Error(w, `{"error":"failed to read request body"}`, http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		pathParams := map[string]string{}
		if id := extractID(r.URL.Path, basePath); id != "" {
			pathParams["id"] = id
		}

		resp := h.Handle(models.Request{
			HTTPMethod: r.Method,
			Body:       string(body),
			PathParams: pathParams,
		})

		writeResponse(w, resp, log)
	}
}

// extractID returns the path segment following basePath, if any
// (e.g. /api/v1/dishes/7 yields "7")
func extractID(path, basePath string) string {
	rest := strings.TrimPrefix(path, basePath)
	rest = strings.TrimPrefix(rest, "/")
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func writeResponse(w http.ResponseWriter, resp models.Response, log *logger.Logger) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		if _, err := io.WriteString(w, resp.Body); err != nil {
			log.Error("Failed to write response body", "error", err)
		}
	}
}

func healthHandler(db *database.DB, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := db.HealthCheck(); err != nil {
			log.Warn("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"status":"unavailable"}`)
			return
		}

		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"status":"ok"}`)
	}
}
