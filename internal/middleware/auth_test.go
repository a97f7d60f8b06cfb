package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adgenius/adgenius-backend/internal/logger"
	"github.com/adgenius/adgenius-backend/internal/requestdata"
	"github.com/adgenius/adgenius-backend/internal/types"
)

func roleGateStatus(t *testing.T, callerRole string, allowed ...string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(&logger.Logger{SugaredLogger: zap.NewNop().Sugar()}, nil)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := requestdata.WithRequestData(req.Context(), &requestdata.RequestData{
		UserID: uuid.New(),
		Role:   callerRole,
	})
	c.Request = req.WithContext(ctx)

	am.RequireRoles(allowed...)(c)
	if !c.IsAborted() {
		return http.StatusOK
	}
	return rec.Code
}

func TestRequireRoles_ManagerAllowedOnReadGate(t *testing.T) {
	if got := roleGateStatus(t, types.RoleManager, types.RoleAdmin, types.RoleManager); got != http.StatusOK {
		t.Fatalf("expected MANAGER allowed, got %d", got)
	}
}

func TestRequireRoles_ManagerForbiddenOnAdminGate(t *testing.T) {
	if got := roleGateStatus(t, types.RoleManager, types.RoleAdmin); got != http.StatusForbidden {
		t.Fatalf("expected MANAGER forbidden, got %d", got)
	}
}

func TestRequireRoles_UserForbidden(t *testing.T) {
	if got := roleGateStatus(t, types.RoleUser, types.RoleAdmin, types.RoleManager); got != http.StatusForbidden {
		t.Fatalf("expected USER forbidden, got %d", got)
	}
}

func TestRequireRoles_MissingIdentityUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(&logger.Logger{SugaredLogger: zap.NewNop().Sugar()}, nil)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	am.RequireRoles(types.RoleAdmin)(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
