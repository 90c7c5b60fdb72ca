package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/response"
)

const databaseUnavailableMessage = "database unavailable"

// HealthCheck 探测数据库连接是否可用。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		a.requestLog(c).WithError(err).Error("database handle unavailable")
		response.Error(c, http.StatusInternalServerError, databaseUnavailableMessage)
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		a.requestLog(c).WithError(err).Error("database ping failed")
		response.Error(c, http.StatusInternalServerError, databaseUnavailableMessage)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "pong")
}
