package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestIDMarshalsAsString(t *testing.T) {
	payload := struct {
		ID    ID  `json:"id"`
		Count int `json:"count"`
	}{ID: 9007199254740993, Count: 2}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"9007199254740993","count":2}`, string(raw))

	negative, err := json.Marshal(ID(-7))
	require.NoError(t, err)
	assert.Equal(t, `"-7"`, string(negative))
}

func render(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return rr
}

func TestSuccessEnvelope(t *testing.T) {
	rr := render(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"id": ID(42)}, "created")
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := rr.Body.String()
	assert.Equal(t, StatusSuccess, gjson.Get(body, "status").String())
	assert.Equal(t, "created", gjson.Get(body, "message").String())
	assert.Equal(t, gjson.String, gjson.Get(body, "data.id").Type)
	assert.Equal(t, "42", gjson.Get(body, "data.id").String())
}

func TestSuccessDefaultsMessage(t *testing.T) {
	rr := render(func(c *gin.Context) {
		Success(c, http.StatusOK, []int{}, "")
	})

	assert.Equal(t, DefaultSuccessMessage, gjson.Get(rr.Body.String(), "message").String())
	assert.True(t, gjson.Get(rr.Body.String(), "data").IsArray())
}

func TestFailEnvelope(t *testing.T) {
	rr := render(func(c *gin.Context) {
		Fail(c, http.StatusBadRequest, map[string]string{"mood_score": "bad"})
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"fail","errors":{"mood_score":"bad"}}`, rr.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	rr := render(func(c *gin.Context) {
		Error(c, http.StatusInternalServerError, "")
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rr.Body.String())
}
