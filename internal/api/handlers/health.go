package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// DBPinger is satisfied by *pgxpool.Pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler reports liveness and readiness. Postgres is a hard
// dependency: the history endpoints cannot work without it, so a failed
// ping makes the instance not ready. Redis only backs the shared rate
// limiter, which falls back to a local bucket, so a missing or failing
// Redis reports the instance as degraded but still ready.
type HealthHandler struct {
	db    DBPinger
	redis RedisPinger // nil when Redis was unreachable at startup
}

func NewHealthHandler(db DBPinger, rdb RedisPinger) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK
	state := "ok"

	if err := h.db.Ping(r.Context()); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	} else {
		checks["database"] = "ok"
	}

	switch {
	case h.redis == nil:
		checks["rate_limiter"] = "degraded: using local fallback"
		if state == "ok" {
			state = "degraded"
		}
	default:
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			checks["rate_limiter"] = "degraded: " + err.Error()
			if state == "ok" {
				state = "degraded"
			}
		} else {
			checks["rate_limiter"] = "ok"
		}
	}

	writeJSON(w, status, map[string]interface{}{"status": state, "checks": checks})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
