package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/logging"
	"github.com/moodcheckin/internal/metrics"
	"github.com/moodcheckin/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db      *gorm.DB
	moods   *service.MoodService
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewAPI constructs a handler set with shared services.
// logger 为 nil 时丢弃日志，metrics 为 nil 时不计数。
func NewAPI(gdb *gorm.DB, logger *logrus.Logger, m *metrics.Metrics) *API {
	if logger == nil {
		logger = logging.Discard()
	}

	return &API{
		db:      gdb,
		moods:   service.NewMoodService(gdb),
		metrics: m,
		logger:  logger,
	}
}

// requestLog 返回附带请求 ID 与路由信息的日志 entry
func (a *API) requestLog(c *gin.Context) *logrus.Entry {
	return a.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Request.Method,
		"route":      c.FullPath(),
	})
}
