// Package validation evaluates declarative field rule tables against decoded
// request values. Each field reports at most one message: the first check
// that fails.
package validation

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultMessage 未指定消息时使用的通用提示
const DefaultMessage = "Invalid value"

const dateLayout = "2006-01-02"

// 足以精确表示任意 int64
const numberPrecision = 256

var validate = validator.New()

// Check 是单条规则，Test 返回 false 即视为失败。
type Check struct {
	Message string
	Test    func(value any) bool
}

// Rule 描述一个字段的检查序列。Optional 字段缺失或为 null 时跳过全部检查。
type Rule struct {
	Field    string
	Optional bool
	Checks   []Check
}

// Rules 是一张静态规则表
type Rules []Rule

// Check 按表顺序执行规则，返回字段到首个失败消息的映射；全部通过时返回 nil。
func (r Rules) Check(values map[string]any) map[string]string {
	var errs map[string]string

	for _, rule := range r {
		value, present := values[rule.Field]
		if rule.Optional && (!present || value == nil) {
			continue
		}
		for _, check := range rule.Checks {
			if check.Test(value) {
				continue
			}
			if errs == nil {
				errs = make(map[string]string)
			}
			if _, exists := errs[rule.Field]; !exists {
				errs[rule.Field] = messageOr(check.Message)
			}
			break
		}
	}

	return errs
}

// Int64 要求值为可放入 int64 的整数（JSON 数字或十进制字符串）。
func Int64(message string) Check {
	return Check{Message: message, Test: func(value any) bool {
		_, ok := Int64Value(value)
		return ok
	}}
}

// IntBetween 要求值为 [min, max] 区间内的整数。
func IntBetween(min, max int64, message string) Check {
	tag := fmt.Sprintf("gte=%d,lte=%d", min, max)
	return Check{Message: message, Test: func(value any) bool {
		n, ok := Int64Value(value)
		if !ok {
			return false
		}
		return validate.Var(n, tag) == nil
	}}
}

// ISODate 要求值为 YYYY-MM-DD 或 RFC 3339 时间戳字符串。
func ISODate(message string) Check {
	return Check{Message: message, Test: func(value any) bool {
		_, ok := DateValue(value)
		return ok
	}}
}

// String 要求值为字符串
func String(message string) Check {
	return Check{Message: message, Test: func(value any) bool {
		_, ok := value.(string)
		return ok
	}}
}

// MaxLength 限制字符串的字符数（按 rune 计）。
func MaxLength(max int, message string) Check {
	tag := fmt.Sprintf("max=%d", max)
	return Check{Message: message, Test: func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		return validate.Var(s, tag) == nil
	}}
}

// Int64Value 把 json.Number、字符串或整型转换为 int64。
// JSON 数字允许小数或指数写法，只要值本身是整数（如 3.0、1e0）。
func Int64Value(value any) (int64, bool) {
	var raw string
	switch v := value.(type) {
	case json.Number:
		return jsonNumberInt64(v)
	case string:
		raw = v
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func jsonNumberInt64(num json.Number) (int64, bool) {
	if n, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		return n, true
	}

	f, _, err := big.ParseFloat(num.String(), 10, numberPrecision, big.ToNearestEven)
	if err != nil || !f.IsInt() {
		return 0, false
	}
	n, acc := f.Int64()
	if acc != big.Exact {
		return 0, false
	}
	return n, true
}

// DateValue 解析日期字符串，返回 UTC 零点的日历日期。
func DateValue(value any) (time.Time, bool) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)

	if validate.Var(s, "datetime="+dateLayout) == nil {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}

	if validate.Var(s, "datetime="+time.RFC3339Nano) == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, false
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

func messageOr(message string) string {
	if message == "" {
		return DefaultMessage
	}
	return message
}
