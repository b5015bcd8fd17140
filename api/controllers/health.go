package controllers

import (
	"net/http"

	"github.com/afuwah/electronics-backend/api/responses"
	"github.com/afuwah/electronics-backend/internal/snapshot"
	"github.com/afuwah/electronics-backend/pkg/config"
	pkgerrors "github.com/afuwah/electronics-backend/pkg/errors"
	"github.com/afuwah/electronics-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Afua-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the snapshot backend answers a ping.
func HealthReady(cfg *config.Config, store snapshot.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Afua-Env", cfg.App.Env)
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot store unavailable"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot backend unreachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
