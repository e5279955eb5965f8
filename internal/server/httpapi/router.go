// Package httpapi serves the credential store over a small JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// AccountStore is the part of credentials.Store the API calls.
type AccountStore interface {
	CreateUser(ctx context.Context, account models.Account, password []byte) (string, error)
	VerifyLogin(ctx context.Context, email string, password []byte) (string, error)
	UserExists(ctx context.Context, email string) (bool, error)
	Ping(ctx context.Context) error
}

// TokenIssuer mints the access token returned by a successful login.
type TokenIssuer func(email string) (string, error)

type Handler struct {
	store  AccountStore
	issue  TokenIssuer
	logger logging.Logger
}

// NewRouter wires the routes:
//
//	GET  /healthz
//	GET  /readyz
//	POST /api/v1/users
//	POST /api/v1/login
//	GET  /api/v1/users/{email}/exists
func NewRouter(store AccountStore, issue TokenIssuer, logger logging.Logger) http.Handler {
	h := &Handler{store: store, issue: issue, logger: logger.With("module", "http_server")}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(h.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", h.CreateUser)
		r.Post("/login", h.Login)
		r.Get("/users/{email}/exists", h.UserExists)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info(r.Context(), "request served",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started),
		)
	})
}
