package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type packRequest struct {
	Total int    `json:"total" binding:"required,min=1"`
	Email string `json:"email" binding:"required,email"`
}

func bindRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req packRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondBindError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRespondBindErrorListsFields(t *testing.T) {
	w := httptest.NewRecorder()
	bindRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":"nope"}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Code)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "Total", resp.Details[0].Field)
	assert.Equal(t, "Total is required", resp.Details[0].Message)
	assert.Equal(t, "Email must be a valid email address", resp.Details[1].Message)
}

func TestRespondBindErrorMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	bindRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"total":`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_body", resp.Code)
	assert.Empty(t, resp.Details)
}
