package db

import "time"

// MoodEntry 记录某个用户某一天的心情打卡
// UserID 只是外部用户系统的标识，这里不做外键约束
// Date 仅保留日期部分（UTC 零点），列类型为 date
// MoodLabel/Notes 可选，nil 表示未填写
type MoodEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index:idx_mood_entries_user_date,priority:1"`
	Date      time.Time `gorm:"type:date;not null;index:idx_mood_entries_user_date,priority:2"`
	MoodScore int       `gorm:"not null"`
	MoodLabel *string   `gorm:"size:100"`
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 固定表名
func (MoodEntry) TableName() string {
	return "mood_entries"
}
