package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/fileshare-io/fileshare-api/utils"
)

// HealthCheck reports the reachability of every backing service.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	components := gin.H{
		"database": "ok",
		"storage":  "ok",
		"cache":    "ok",
	}
	healthy := true

	sqlDB, err := ctrl.Infra.Postgres.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		components["database"] = err.Error()
		healthy = false
	}

	if err := ctrl.Infra.Minio.HealthCheck(ctx); err != nil {
		components["storage"] = err.Error()
		healthy = false
	}

	if err := ctrl.Infra.Redis.Client.Ping(ctx).Err(); err != nil {
		components["cache"] = err.Error()
		healthy = false
	}

	if !healthy {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Health] Degraded: %v", components)
		utils.JSON503(c, gin.H{"status": "degraded", "components": components})
		return
	}

	utils.JSON200(c, gin.H{"status": "ok", "components": components})
}
