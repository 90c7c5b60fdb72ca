package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/moodcheckin/internal/config"
	"github.com/moodcheckin/internal/db"
	"github.com/moodcheckin/internal/logging"
	"github.com/moodcheckin/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var seedLabels = []string{"低落", "疲惫", "平静", "不错", "开心"}

// 测试数据生成器：为若干用户生成最近 N 天的心情记录
func main() {
	users := flag.Int("users", 3, "number of users to seed")
	days := flag.Int("days", 30, "days of history per user")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("配置无效")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("日志初始化失败")
	}

	// 初始化数据库
	gdb, err := db.Init(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseDSN,
		Logger: logging.GormLogger(logger),
	})
	if err != nil {
		logger.WithError(err).Fatal("数据库初始化失败")
	}
	defer db.Close(gdb)

	created, err := seedMoodEntries(context.Background(), gdb, logger, *users, *days, time.Now().UTC())
	if err != nil {
		logger.WithError(err).Fatal("生成测试数据失败")
	}

	logger.WithFields(logrus.Fields{"entries": created, "users": *users}).Info("测试数据生成完成")
}

// seedMoodEntries 为 user_id 1..users 生成 days 天的记录，已存在记录的用户跳过。
func seedMoodEntries(ctx context.Context, gdb *gorm.DB, logger logrus.FieldLogger, users, days int, today time.Time) (int, error) {
	svc := service.NewMoodService(gdb)
	created := 0

	for user := 1; user <= users; user++ {
		var count int64
		if err := gdb.WithContext(ctx).Model(&db.MoodEntry{}).Where("user_id = ?", user).Count(&count).Error; err != nil {
			return created, fmt.Errorf("count entries for user %d: %w", user, err)
		}
		if count > 0 {
			logger.WithField("user_id", user).Info("用户已有记录，跳过")
			continue
		}

		for day := 0; day < days; day++ {
			score := service.MinMoodScore + (user+day)%(service.MaxMoodScore-service.MinMoodScore+1)
			label := seedLabels[score-service.MinMoodScore]
			if _, err := svc.Create(ctx, service.MoodEntryInput{
				UserID:    int64(user),
				Date:      today.AddDate(0, 0, -day),
				MoodScore: score,
				MoodLabel: &label,
			}); err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}
