package router

import (
	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/handler"
	"github.com/moodcheckin/internal/logging"
	"github.com/moodcheckin/internal/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options 描述构造路由所需的外部依赖
type Options struct {
	APIKey  string
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
}

// SetupRouter 配置 Gin 引擎和路由
// 鉴权中间件挂在引擎上，未匹配的路径同样需要 x-api-key。
func SetupRouter(gdb *gorm.DB, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := gin.New()
	r.Use(
		handler.RequestID(),
		handler.RequestLogger(logger),
		handler.Recovery(logger),
		m.Middleware(),
		handler.APIKeyAuth(opts.APIKey, logger),
	)
	r.NoRoute(handler.NotFound)

	api := handler.NewAPI(gdb, logger, m)

	r.GET("/ping", api.HealthCheck)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/mood", api.CreateMoodEntry)
	r.GET("/mood/:user_id", api.GetMoodHistory)
	r.GET("/summary/:user_id", api.GetMoodSummary)

	return r
}
