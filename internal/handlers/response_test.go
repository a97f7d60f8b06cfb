package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adgenius/adgenius-backend/internal/services"
)

func respondStatus(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondServiceError(c, err)
	return rec.Code
}

func TestRespondServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &services.ValidationError{Message: "bad input"}, http.StatusBadRequest},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound},
		{"content policy", services.ErrContentPolicy, http.StatusBadRequest},
		{"rate limited", services.ErrRateLimited, http.StatusTooManyRequests},
		{"image auth", services.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := respondStatus(t, tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
