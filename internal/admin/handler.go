// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campaignhq/campaign-backend/internal/auth"
	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/user"
)

const defaultAttemptLimit = 50

type Handler struct {
	userCounts     func() map[user.Status]int
	attemptCount   func() int
	recentAttempts func(ctx context.Context, limit int) ([]auth.LoginAttempt, error)
	storePing      func(ctx context.Context) error
	auditPing      func(ctx context.Context) error
}

type HandlerConfig struct {
	UserCounts     func() map[user.Status]int
	AttemptCount   func() int
	RecentAttempts func(ctx context.Context, limit int) ([]auth.LoginAttempt, error)
	StorePing      func(ctx context.Context) error
	AuditPing      func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		userCounts:     cfg.UserCounts,
		attemptCount:   cfg.AttemptCount,
		recentAttempts: cfg.RecentAttempts,
		storePing:      cfg.StorePing,
		auditPing:      cfg.AuditPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/users", h.GetUserStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/login-attempts", h.GetLoginAttempts)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	storeHealthy := true
	if h.storePing != nil {
		if err := h.storePing(ctx); err != nil {
			storeHealthy = false
		}
	}

	auditConfigured := h.auditPing != nil
	auditHealthy := auditConfigured
	if auditConfigured {
		if err := h.auditPing(ctx); err != nil {
			auditHealthy = false
		}
	}

	response := SystemStatsResponse{
		Store: StoreStatus{
			Healthy: storeHealthy,
		},
		Audit: AuditStatus{
			Configured: auditConfigured,
			Healthy:    auditHealthy,
		},
		Users:   h.getUserStats(),
		Runtime: collectRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getUserStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, collectRuntimeStats())
}

// GetLoginAttempts returns the persisted attempt history from the audit
// sink when one is configured, newest first.
func (h *Handler) GetLoginAttempts(w http.ResponseWriter, r *http.Request) {
	if h.recentAttempts == nil {
		core.NotFound(w, "audit log")
		return
	}

	limit := defaultAttemptLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			core.BadRequest(w, "limit must be between 1 and 1000")
			return
		}
		limit = parsed
	}

	attempts, err := h.recentAttempts(r.Context(), limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, attempts)
}

func (h *Handler) getUserStats() UserStats {
	stats := UserStats{ByStatus: map[string]int{}}

	if h.userCounts != nil {
		for status, count := range h.userCounts() {
			stats.ByStatus[string(status)] = count
			stats.Total += count
		}
	}

	if h.attemptCount != nil {
		stats.RetainedLoginAttempts = h.attemptCount()
	}

	return stats
}

func collectRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

type SystemStatsResponse struct {
	Store   StoreStatus  `json:"store"`
	Audit   AuditStatus  `json:"audit"`
	Users   UserStats    `json:"users"`
	Runtime RuntimeStats `json:"runtime"`
}

type StoreStatus struct {
	Healthy bool `json:"healthy"`
}

type AuditStatus struct {
	Configured bool `json:"configured"`
	Healthy    bool `json:"healthy"`
}

type UserStats struct {
	Total                 int            `json:"total"`
	ByStatus              map[string]int `json:"by_status"`
	RetainedLoginAttempts int            `json:"retained_login_attempts"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
