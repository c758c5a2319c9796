package routes

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/terabiome/gns3facts/internal/handler"
)

// Router wraps http.ServeMux and provides route setup
type Router struct {
	*http.ServeMux
}

// V1Handler returns a handler for v1 API routes
func (router *Router) V1Handler(inventoryHandler *handler.Inventory) http.Handler {
	mux := http.NewServeMux()

	// Setup inventory routes
	inventoryMux := http.NewServeMux()
	inventoryMux.HandleFunc("POST /nodes", inventoryHandler.Nodes)
	inventoryMux.HandleFunc("GET /format", inventoryHandler.FormatRequest)
	mux.Handle("/inventory/", http.StripPrefix("/inventory", inventoryMux))

	// Setup server routes
	serverMux := http.NewServeMux()
	serverMux.HandleFunc("GET /version", inventoryHandler.ServerVersion)
	mux.Handle("/server/", http.StripPrefix("/server", serverMux))

	return mux
}

// SetupMux creates and configures the main router
func SetupMux(inventoryHandler *handler.Inventory, logger *slog.Logger) *Router {
	router := Router{http.NewServeMux()}

	router.ServeMux.Handle("/api/v1/", withRequestID(logger, http.StripPrefix("/api/v1", router.V1Handler(inventoryHandler))))

	router.ServeMux.HandleFunc("/heartbeat", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(200)
		writer.Write([]byte("i have not exploded"))
	})

	return &router
}

// withRequestID tags every API request with an id, echoed in X-Request-ID
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestID := request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		writer.Header().Set("X-Request-ID", requestID)

		logger.Info("api request",
			slog.String("request_id", requestID),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
		)
		next.ServeHTTP(writer, request)
	})
}
