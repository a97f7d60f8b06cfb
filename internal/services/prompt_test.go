package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adgenius/adgenius-backend/internal/repos"
	"github.com/adgenius/adgenius-backend/internal/requestdata"
	"github.com/adgenius/adgenius-backend/internal/types"
)

type promptFixture struct {
	db          *gorm.DB
	svc         PromptService
	linkSvc     ProductPromptService
	ownerID     uuid.UUID
	intruderID  uuid.UUID
	adminID     uuid.UUID
	productID   uuid.UUID
	promptID    uuid.UUID
	linkID      uuid.UUID
}

func newPromptFixture(t *testing.T) *promptFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Product{}, &types.Prompt{}, &types.ProductPrompt{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	log := testLogger()
	userRepo := repos.NewUserRepo(db, log)
	productRepo := repos.NewProductRepo(db, log)
	promptRepo := repos.NewPromptRepo(db, log)
	productPromptRepo := repos.NewProductPromptRepo(db, log)

	ownerID := uuid.New()
	intruderID := uuid.New()
	adminID := uuid.New()
	if _, err := userRepo.Create(context.Background(), nil, []*types.User{
		{ID: ownerID, Username: "owner", Email: "owner@example.com", Password: "hashed", Role: types.RoleUser, IsActive: true},
		{ID: intruderID, Username: "other", Email: "other@example.com", Password: "hashed", Role: types.RoleUser, IsActive: true},
		{ID: adminID, Username: "admin", Email: "admin@example.com", Password: "hashed", Role: types.RoleAdmin, IsActive: true},
	}); err != nil {
		t.Fatalf("seeding users: %v", err)
	}

	productID := uuid.New()
	if _, err := productRepo.Create(context.Background(), nil, []*types.Product{{
		ID:      productID,
		Name:    "Acme Shoes",
		Desc:    "running shoes",
		Website: "https://acme.test",
		UserID:  ownerID,
	}}); err != nil {
		t.Fatalf("seeding product: %v", err)
	}

	promptID := uuid.New()
	if _, err := promptRepo.Create(context.Background(), nil, []*types.Prompt{{
		ID:               promptID,
		Title:            "Ad for Acme Shoes",
		Description:      "Spring campaign",
		TargetAudience:   "Runners",
		GenerationStatus: types.StatusCompleted,
		FinalPrompt:      "a running shoe on a track",
	}}); err != nil {
		t.Fatalf("seeding prompt: %v", err)
	}

	linkID := uuid.New()
	if _, err := productPromptRepo.Create(context.Background(), nil, []*types.ProductPrompt{{
		ID:        linkID,
		ProductID: productID,
		PromptID:  promptID,
	}}); err != nil {
		t.Fatalf("seeding link: %v", err)
	}

	svc := NewPromptService(db, log, promptRepo, productPromptRepo)
	linkSvc := NewProductPromptService(db, log, productRepo, productPromptRepo)

	return &promptFixture{
		db:         db,
		svc:        svc,
		linkSvc:    linkSvc,
		ownerID:    ownerID,
		intruderID: intruderID,
		adminID:    adminID,
		productID:  productID,
		promptID:   promptID,
		linkID:     linkID,
	}
}

func (f *promptFixture) ctxFor(userID uuid.UUID, role string) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: userID,
		Role:   role,
	})
}

func (f *promptFixture) promptRows(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&types.Prompt{}).Count(&n).Error; err != nil {
		t.Fatalf("counting prompts: %v", err)
	}
	return n
}

func (f *promptFixture) linkRows(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&types.ProductPrompt{}).Count(&n).Error; err != nil {
		t.Fatalf("counting links: %v", err)
	}
	return n
}

func TestGetPrompt_OwnerSucceeds(t *testing.T) {
	fx := newPromptFixture(t)

	got, err := fx.svc.GetPrompt(fx.ctxFor(fx.ownerID, types.RoleUser), fx.promptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != fx.promptID {
		t.Fatalf("wrong prompt returned: %s", got.ID)
	}
}

func TestGetPrompt_ForeignUserDenied(t *testing.T) {
	fx := newPromptFixture(t)

	_, err := fx.svc.GetPrompt(fx.ctxFor(fx.intruderID, types.RoleUser), fx.promptID)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError for foreign user, got %v", err)
	}
}

func TestGetPrompt_AdminSeesAnyPrompt(t *testing.T) {
	fx := newPromptFixture(t)

	got, err := fx.svc.GetPrompt(fx.ctxFor(fx.adminID, types.RoleAdmin), fx.promptID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != fx.promptID {
		t.Fatalf("wrong prompt returned: %s", got.ID)
	}
}

func TestDeletePrompt_ForeignUserDeniedAndRowSurvives(t *testing.T) {
	fx := newPromptFixture(t)

	err := fx.svc.DeletePrompt(fx.ctxFor(fx.intruderID, types.RoleUser), fx.promptID)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError for foreign user, got %v", err)
	}
	if got := fx.promptRows(t); got != 1 {
		t.Fatalf("foreign delete must not remove the row, found %d", got)
	}
}

func TestDeletePrompt_OwnerSucceeds(t *testing.T) {
	fx := newPromptFixture(t)

	if err := fx.svc.DeletePrompt(fx.ctxFor(fx.ownerID, types.RoleUser), fx.promptID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fx.promptRows(t); got != 0 {
		t.Fatalf("expected prompt removed, found %d rows", got)
	}
}

func TestDeleteLink_ForeignUserDeniedAndLinkSurvives(t *testing.T) {
	fx := newPromptFixture(t)

	err := fx.linkSvc.DeleteLink(fx.ctxFor(fx.intruderID, types.RoleUser), fx.linkID)
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError for foreign user, got %v", err)
	}
	if got := fx.linkRows(t); got != 1 {
		t.Fatalf("foreign delete must not remove the link, found %d", got)
	}
}

func TestDeleteLink_OwnerSucceeds(t *testing.T) {
	fx := newPromptFixture(t)

	if err := fx.linkSvc.DeleteLink(fx.ctxFor(fx.ownerID, types.RoleUser), fx.linkID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fx.linkRows(t); got != 0 {
		t.Fatalf("expected link removed, found %d rows", got)
	}
}

func TestListPrompts_SearchIsCaseInsensitive(t *testing.T) {
	fx := newPromptFixture(t)

	page, err := fx.svc.ListPrompts(fx.ctxFor(fx.ownerID, types.RoleUser), repos.PromptFilter{Search: "ACME"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || len(page.Prompts) != 1 {
		t.Fatalf("expected 1 match, got total=%d len=%d", page.Total, len(page.Prompts))
	}
	if page.Prompts[0].ID != fx.promptID {
		t.Fatalf("wrong prompt matched: %s", page.Prompts[0].ID)
	}
}

func TestListPrompts_ForeignUserSeesNothing(t *testing.T) {
	fx := newPromptFixture(t)

	page, err := fx.svc.ListPrompts(fx.ctxFor(fx.intruderID, types.RoleUser), repos.PromptFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 0 || len(page.Prompts) != 0 {
		t.Fatalf("expected empty page, got total=%d len=%d", page.Total, len(page.Prompts))
	}
}
