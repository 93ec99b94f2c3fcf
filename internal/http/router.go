package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"xpoll/internal/domain/poll"
	"xpoll/internal/domain/response"
	"xpoll/internal/domain/summary"
	"xpoll/internal/domain/user"
	"xpoll/internal/worker"
)

type Handler struct {
	userSvc     *user.Service
	pollSvc     *poll.Service
	responseSvc *response.Service
	summarySvc  *summary.Service
	responseCh  chan<- worker.ResponseEvent
	db          *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	pollSvc *poll.Service,
	responseSvc *response.Service,
	summarySvc *summary.Service,
	responseCh chan<- worker.ResponseEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:     userSvc,
		pollSvc:     pollSvc,
		responseSvc: responseSvc,
		summarySvc:  summarySvc,
		responseCh:  responseCh,
		db:          db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", h.handleCreateUser)
		r.Get("/users/{id}", h.handleGetUser)
		r.Post("/users/verify", h.handleVerifyUser)

		r.Post("/polls", h.handleCreatePoll)
		r.Get("/polls/{id}", h.handleGetPoll)
		r.Post("/polls/{id}/close", h.handleClosePoll)
		r.With(RateLimitResponses(rate.Every(time.Minute/10), 3)).
			Post("/polls/{id}/responses", h.handleCreateResponse)
		r.Get("/polls/{id}/summaries", h.handleGetSummaries)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "store_unavailable",
			"message": "store not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "store_unavailable",
			"message": "store not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
