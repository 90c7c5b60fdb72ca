package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	{Field: "user_id", Checks: []Check{Int64("user_id must be an integer")}},
	{Field: "date", Checks: []Check{ISODate("bad date")}},
	{Field: "score", Checks: []Check{IntBetween(1, 5, "score out of range")}},
	{Field: "label", Optional: true, Checks: []Check{
		String("label must be a string"),
		MaxLength(5, "label too long"),
	}},
}

func TestRulesCheckPassesValidInput(t *testing.T) {
	errs := testRules.Check(map[string]any{
		"user_id": json.Number("9007199254740993"),
		"date":    "2024-03-01",
		"score":   json.Number("3"),
		"label":   "calm",
	})
	assert.Nil(t, errs)
}

func TestRulesCheckReportsMissingRequiredFields(t *testing.T) {
	errs := testRules.Check(map[string]any{})

	require.Len(t, errs, 3)
	assert.Equal(t, "user_id must be an integer", errs["user_id"])
	assert.Equal(t, "bad date", errs["date"])
	assert.Equal(t, "score out of range", errs["score"])
	assert.NotContains(t, errs, "label")
}

func TestRulesCheckFirstFailureWins(t *testing.T) {
	errs := testRules.Check(map[string]any{
		"user_id": "1",
		"date":    "2024-03-01",
		"score":   "2",
		"label":   json.Number("12"),
	})
	assert.Equal(t, map[string]string{"label": "label must be a string"}, errs)

	errs = testRules.Check(map[string]any{
		"user_id": "1",
		"date":    "2024-03-01",
		"score":   "2",
		"label":   "toolong",
	})
	assert.Equal(t, map[string]string{"label": "label too long"}, errs)
}

func TestOptionalFieldSkipsNull(t *testing.T) {
	errs := testRules.Check(map[string]any{
		"user_id": "1",
		"date":    "2024-03-01",
		"score":   "2",
		"label":   nil,
	})
	assert.Nil(t, errs)
}

func TestIntBetween(t *testing.T) {
	check := IntBetween(1, 5, "")
	for _, value := range []any{json.Number("1"), json.Number("5"), "3"} {
		assert.True(t, check.Test(value), "expected %v to pass", value)
	}
	for _, value := range []any{json.Number("0"), json.Number("6"), json.Number("3.5"), "abc", true, nil} {
		assert.False(t, check.Test(value), "expected %v to fail", value)
	}
}

func TestInt64Value(t *testing.T) {
	n, ok := Int64Value(json.Number("9007199254740993"))
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	n, ok = Int64Value("+42")
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = Int64Value("99999999999999999999")
	assert.False(t, ok)

	n, ok = Int64Value(json.Number("1e3"))
	require.True(t, ok)
	assert.Equal(t, int64(1000), n)

	for raw, want := range map[string]int64{"3.0": 3, "1e0": 1, "-2.00": -2, "9007199254740993.0": 9007199254740993} {
		n, ok = Int64Value(json.Number(raw))
		require.True(t, ok, raw)
		assert.Equal(t, want, n, raw)
	}

	for _, raw := range []string{"3.5", "1e-1", "1e30"} {
		_, ok = Int64Value(json.Number(raw))
		assert.False(t, ok, raw)
	}

	// 字符串仍要求十进制整数写法
	_, ok = Int64Value("3.0")
	assert.False(t, ok)
}

func TestIntBetweenAcceptsIntegralJSONNumbers(t *testing.T) {
	check := IntBetween(1, 5, "")
	assert.True(t, check.Test(json.Number("3.0")))
	assert.True(t, check.Test(json.Number("5e0")))
	assert.False(t, check.Test(json.Number("5.5")))
	assert.False(t, check.Test(json.Number("6.0")))
}

func TestDateValue(t *testing.T) {
	d, ok := DateValue("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	d, ok = DateValue("2024-03-01T23:30:00+08:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	// 带偏移的时间戳取其 UTC 时刻的日期
	d, ok = DateValue("2024-01-01T23:00:00-05:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)

	d, ok = DateValue("2024-03-01T05:00:00+08:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, value := range []any{"2023-02-29", "01/03/2024", "", json.Number("20240101")} {
		_, ok := DateValue(value)
		assert.False(t, ok, "expected %v to be rejected", value)
	}
}

func TestMaxLengthCountsRunes(t *testing.T) {
	check := MaxLength(3, "")
	assert.True(t, check.Test("开心了"))
	assert.False(t, check.Test(strings.Repeat("a", 4)))
}

func TestDefaultMessage(t *testing.T) {
	errs := Rules{{Field: "x", Checks: []Check{String("")}}}.Check(map[string]any{"x": 1})
	assert.Equal(t, DefaultMessage, errs["x"])
}
