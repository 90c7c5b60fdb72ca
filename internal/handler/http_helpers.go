package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/moodcheckin/internal/response"
	"github.com/moodcheckin/internal/validation"
)

const (
	dateFormat = "2006-01-02"

	bodyField          = "body"
	invalidBodyMessage = "request body must be a JSON object"
)

func init() {
	// user_id 可能超出 float64 的精确范围，数字一律解码为 json.Number
	binding.EnableDecoderUseNumber = true
}

// bindJSONObject 把请求体解码为字段映射，失败时写出 400 并返回 false。
func bindJSONObject(c *gin.Context) (map[string]any, bool) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Fail(c, http.StatusBadRequest, map[string]string{bodyField: invalidBodyMessage})
		return nil, false
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, true
}

// checkRules 执行规则表，失败时写出 400 并返回 false。
func checkRules(c *gin.Context, rules validation.Rules, values map[string]any) bool {
	if errs := rules.Check(values); len(errs) > 0 {
		response.Fail(c, http.StatusBadRequest, errs)
		return false
	}
	return true
}

// pathValues 收集路由参数，供规则表统一校验。
func pathValues(c *gin.Context, keys ...string) map[string]any {
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		values[key] = c.Param(key)
	}
	return values
}

func optionalString(values map[string]any, key string) *string {
	s, ok := values[key].(string)
	if !ok {
		return nil
	}
	return &s
}
