package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storetags/internal/delivery/http/controllers"
	"storetags/internal/delivery/http/helpers"
	"storetags/internal/delivery/http/middleware"
	"storetags/internal/domain"

	_ "storetags/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(tagController *controllers.TagController, verifier domain.TokenVerifier, db Pinger, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Tags
	mux.HandleFunc("GET /store/{store_id}/tag", auth(tagController.ListStoreTags))
	mux.HandleFunc("POST /store/{store_id}/tag", auth(tagController.CreateStoreTag))
	mux.HandleFunc("POST /item/{item_id}/tag/{tag_id}", auth(tagController.LinkTagToItem))
	mux.HandleFunc("DELETE /item/{item_id}/tag/{tag_id}", auth(tagController.UnlinkTagFromItem))
	mux.HandleFunc("GET /item/{item_id}/tag", auth(tagController.ListItemTags))
	mux.HandleFunc("GET /tag/{tag_id}", auth(tagController.GetTag))
	mux.HandleFunc("DELETE /tag/{tag_id}", auth(tagController.DeleteTag))
	mux.HandleFunc("GET /tag/{tag_id}/item", auth(tagController.ListTagItems))

	mux.HandleFunc("GET /healthz", healthz(db, logger))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request id, access logging and CORS, outermost first.
func NewHandler(mux http.Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	return middleware.RequestID(middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, mux)))
}

func healthz(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logger.WarnContext(r.Context(), "health check failed", "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "database unavailable")
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
