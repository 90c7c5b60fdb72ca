package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moodcheckin/internal/db"
	"github.com/moodcheckin/internal/response"
	"github.com/moodcheckin/internal/service"
	"github.com/moodcheckin/internal/validation"
)

const (
	moodCreatedMessage = "Mood entry created successfully"

	createMoodErrorMessage  = "An unexpected error occurred while creating mood entry."
	moodHistoryErrorMessage = "An unexpected error occurred while fetching mood history."
	moodSummaryErrorMessage = "An unexpected error occurred while calculating summary."
)

var createMoodRules = validation.Rules{
	{Field: "user_id", Checks: []validation.Check{
		validation.Int64("user_id must be an integer"),
	}},
	{Field: "date", Checks: []validation.Check{
		validation.ISODate("date must be a valid ISO 8601 date (YYYY-MM-DD)"),
	}},
	{Field: "mood_score", Checks: []validation.Check{
		validation.IntBetween(service.MinMoodScore, service.MaxMoodScore, "mood_score must be an integer between 1 and 5"),
	}},
	{Field: "mood_label", Optional: true, Checks: []validation.Check{
		validation.String(validation.DefaultMessage),
		validation.MaxLength(service.MaxMoodLabelLength, validation.DefaultMessage),
	}},
	{Field: "notes", Optional: true, Checks: []validation.Check{
		validation.String(validation.DefaultMessage),
	}},
}

var userIDParamRules = validation.Rules{
	{Field: "user_id", Checks: []validation.Check{
		validation.Int64("user_id must be an integer"),
	}},
}

type moodEntryPayload struct {
	ID        response.ID `json:"id"`
	UserID    response.ID `json:"userId"`
	Date      string      `json:"date"`
	MoodScore int         `json:"moodScore"`
	MoodLabel *string     `json:"moodLabel"`
	Notes     *string     `json:"notes"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type moodSummaryPayload struct {
	UserID       string  `json:"user_id"`
	TotalEntries int64   `json:"total_entries"`
	AverageMood  *string `json:"average_mood"`
}

// CreateMoodEntry 保存一条心情记录
func (a *API) CreateMoodEntry(c *gin.Context) {
	values, ok := bindJSONObject(c)
	if !ok {
		return
	}
	if !checkRules(c, createMoodRules, values) {
		return
	}

	userID, _ := validation.Int64Value(values["user_id"])
	date, _ := validation.DateValue(values["date"])
	score, _ := validation.Int64Value(values["mood_score"])

	entry, err := a.moods.Create(c.Request.Context(), service.MoodEntryInput{
		UserID:    userID,
		Date:      date,
		MoodScore: int(score),
		MoodLabel: optionalString(values, "mood_label"),
		Notes:     optionalString(values, "notes"),
	})
	if err != nil {
		a.requestLog(c).WithError(err).WithField("user_id", userID).Error("create mood entry failed")
		response.Error(c, http.StatusInternalServerError, createMoodErrorMessage)
		return
	}

	a.metrics.EntryCreated()
	response.Success(c, http.StatusCreated, moodEntryToPayload(*entry), moodCreatedMessage)
}

// GetMoodHistory 返回用户的心情记录，按日期倒序
func (a *API) GetMoodHistory(c *gin.Context) {
	userID, ok := a.userIDParam(c)
	if !ok {
		return
	}

	entries, err := a.moods.History(c.Request.Context(), userID)
	if err != nil {
		a.requestLog(c).WithError(err).WithField("user_id", userID).Error("fetch mood history failed")
		response.Error(c, http.StatusInternalServerError, moodHistoryErrorMessage)
		return
	}

	items := make([]moodEntryPayload, 0, len(entries))
	for _, entry := range entries {
		items = append(items, moodEntryToPayload(entry))
	}

	response.Success(c, http.StatusOK, items, "")
}

// GetMoodSummary 返回记录总数与平均分
func (a *API) GetMoodSummary(c *gin.Context) {
	userID, ok := a.userIDParam(c)
	if !ok {
		return
	}

	summary, err := a.moods.Summary(c.Request.Context(), userID)
	if err != nil {
		a.requestLog(c).WithError(err).WithField("user_id", userID).Error("calculate mood summary failed")
		response.Error(c, http.StatusInternalServerError, moodSummaryErrorMessage)
		return
	}

	// user_id 原样回显路径参数
	response.Success(c, http.StatusOK, moodSummaryPayload{
		UserID:       c.Param("user_id"),
		TotalEntries: summary.TotalEntries,
		AverageMood:  summary.FormattedAverage(),
	}, "")
}

func (a *API) userIDParam(c *gin.Context) (int64, bool) {
	values := pathValues(c, "user_id")
	if !checkRules(c, userIDParamRules, values) {
		return 0, false
	}
	userID, _ := validation.Int64Value(values["user_id"])
	return userID, true
}

func moodEntryToPayload(entry db.MoodEntry) moodEntryPayload {
	return moodEntryPayload{
		ID:        response.ID(entry.ID),
		UserID:    response.ID(entry.UserID),
		Date:      entry.Date.UTC().Format(dateFormat),
		MoodScore: entry.MoodScore,
		MoodLabel: entry.MoodLabel,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
