package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/moodcheckin/internal/db"
	"gorm.io/gorm"
)

const (
	// MinMoodScore 与 MaxMoodScore 定义心情分值区间
	MinMoodScore = 1
	MaxMoodScore = 5
	// MaxMoodLabelLength 标签最大字符数
	MaxMoodLabelLength = 100
)

// ErrMoodScoreOutOfRange 在分值不在 1-5 时返回
var ErrMoodScoreOutOfRange = errors.New("mood score out of range")

// MoodService 负责 MoodEntry 的写入、查询与统计
// 每个方法只发出一次数据库操作，不开启显式事务
type MoodService struct {
	db *gorm.DB
}

// MoodEntryInput 定义创建心情记录时的字段
type MoodEntryInput struct {
	UserID    int64
	Date      time.Time
	MoodScore int
	MoodLabel *string
	Notes     *string
}

// MoodSummary 汇总某个用户的全部记录
// AverageMood 为 nil 表示没有记录，均值未定义
type MoodSummary struct {
	UserID       int64
	TotalEntries int64
	AverageMood  *float64
}

// FormattedAverage 返回保留两位小数的均值字符串，无记录时返回 nil。
func (s MoodSummary) FormattedAverage() *string {
	if s.TotalEntries == 0 || s.AverageMood == nil {
		return nil
	}
	// 按二进制精确值取两位小数，恰好一半时远离零进位
	exact := new(big.Rat).SetFloat64(*s.AverageMood)
	if exact == nil {
		return nil
	}
	formatted := exact.FloatString(2)
	return &formatted
}

// NewMoodService 构造 MoodService
func NewMoodService(gdb *gorm.DB) *MoodService {
	return &MoodService{db: gdb}
}

// Create 写入一条心情记录并返回带服务端 ID 的结果
func (s *MoodService) Create(ctx context.Context, input MoodEntryInput) (*db.MoodEntry, error) {
	if input.MoodScore < MinMoodScore || input.MoodScore > MaxMoodScore {
		return nil, fmt.Errorf("%w: %d", ErrMoodScoreOutOfRange, input.MoodScore)
	}

	entry := db.MoodEntry{
		UserID:    input.UserID,
		Date:      normalizeToDate(input.Date),
		MoodScore: input.MoodScore,
		MoodLabel: input.MoodLabel,
		Notes:     input.Notes,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return &entry, nil
}

// History 按日期倒序返回用户的全部记录，同日按 ID 倒序
func (s *MoodService) History(ctx context.Context, userID int64) ([]db.MoodEntry, error) {
	entries := make([]db.MoodEntry, 0)

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	return entries, nil
}

// Summary 用单条聚合查询统计记录数与平均分
func (s *MoodService) Summary(ctx context.Context, userID int64) (*MoodSummary, error) {
	var row struct {
		TotalEntries int64
		AverageMood  sql.NullFloat64
	}

	if err := s.db.WithContext(ctx).
		Model(&db.MoodEntry{}).
		Select("COUNT(id) AS total_entries, AVG(mood_score) AS average_mood").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("summarize mood entries: %w", err)
	}

	summary := &MoodSummary{UserID: userID, TotalEntries: row.TotalEntries}
	if row.TotalEntries > 0 && row.AverageMood.Valid {
		avg := row.AverageMood.Float64
		summary.AverageMood = &avg
	}
	return summary, nil
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
