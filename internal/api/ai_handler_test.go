package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGuidanceService struct {
	message string
	lastArg string
}

func (s *stubGuidanceService) GuidanceFor(ctx context.Context, exerciseName string) string {
	s.lastArg = exerciseName
	return s.message
}

func postGuidance(handler *AIHandler, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/ai", handler.GenerateGuidance)

	req := httptest.NewRequest(http.MethodPost, "/ai", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAIHandler_GenerateGuidance(t *testing.T) {
	stub := &stubGuidanceService{message: "## Instructions\n\nLower slowly."}
	handler := NewAIHandler(stub)

	rec := postGuidance(handler, `{"exerciseName":"Push-Up"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"## Instructions\n\nLower slowly."}`, rec.Body.String())
	assert.Equal(t, "Push-Up", stub.lastArg)
}

func TestAIHandler_GenerateGuidance_MissingName(t *testing.T) {
	handler := NewAIHandler(&stubGuidanceService{})

	for _, body := range []string{`{}`, `{"exerciseName":""}`, `not json`} {
		rec := postGuidance(handler, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Exercise name is required"}`, rec.Body.String())
	}
}
