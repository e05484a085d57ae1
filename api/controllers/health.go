package controllers

import (
	"net/http"

	"github.com/nmoussa/shopzone-backend/api/responses"
	"github.com/nmoussa/shopzone-backend/pkg/config"
	"github.com/nmoussa/shopzone-backend/pkg/db"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
	"github.com/nmoussa/shopzone-backend/pkg/redis"
)

const envHeader = "X-Shopzone-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources so orchestrators only route traffic once
// the process can actually serve it.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
