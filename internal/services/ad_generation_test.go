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
	"github.com/adgenius/adgenius-backend/internal/types"
)

type adGenFixture struct {
	db        *gorm.DB
	svc       AdGenerationService
	fake      *fakeOpenAI
	userID    uuid.UUID
	productID uuid.UUID
}

func newAdGenFixture(t *testing.T, fake *fakeOpenAI) *adGenFixture {
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

	userID := uuid.New()
	if _, err := userRepo.Create(context.Background(), nil, []*types.User{{
		ID:       userID,
		Username: "owner",
		Email:    "owner@example.com",
		Password: "hashed",
		Role:     types.RoleUser,
		IsActive: true,
	}}); err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	productID := uuid.New()
	if _, err := productRepo.Create(context.Background(), nil, []*types.Product{{
		ID:      productID,
		Name:    "Acme Shoes",
		Desc:    "running shoes",
		Website: "https://acme.test",
		UserID:  userID,
	}}); err != nil {
		t.Fatalf("seeding product: %v", err)
	}

	svc := NewAdGenerationService(
		log,
		productRepo,
		promptRepo,
		productPromptRepo,
		NewBrandAnalyzer(log, fake),
		NewCreativePromptGenerator(log, fake),
		NewImageGenerator(log, fake),
	)

	return &adGenFixture{db: db, svc: svc, fake: fake, userID: userID, productID: productID}
}

func (f *adGenFixture) validForm() types.AdFormData {
	return types.AdFormData{
		ProductName: "Acme Shoes",
		Website:     "https://acme.test",
		Description: "running shoes",
		ProductID:   f.productID.String(),
		AdStyle:     "modern",
		ColorScheme: "vibrant",
	}
}

func (f *adGenFixture) promptCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&types.Prompt{}).Count(&n).Error; err != nil {
		t.Fatalf("counting prompts: %v", err)
	}
	return n
}

func (f *adGenFixture) linkCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&types.ProductPrompt{}).Count(&n).Error; err != nil {
		t.Fatalf("counting links: %v", err)
	}
	return n
}

func (f *adGenFixture) loadPrompt(t *testing.T, id uuid.UUID) *types.Prompt {
	t.Helper()
	var p types.Prompt
	if err := f.db.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("loading prompt %s: %v", id, err)
	}
	return &p
}

func TestGenerateAd_CompletesAndPersists(t *testing.T) {
	// Both text answers are unparsable so the fallback path is exercised
	// end to end; the pipeline must still complete.
	fake := &fakeOpenAI{textResponses: []string{"not json", "still not json"}}
	fx := newAdGenFixture(t, fake)

	result, err := fx.svc.GenerateAd(context.Background(), fx.userID, fx.validForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BrandAnalysis == nil || result.CreativePrompts == nil || result.AdImage == nil {
		t.Fatalf("incomplete result: %+v", result)
	}
	if fake.textCalls != 2 {
		t.Fatalf("expected 2 text calls, got %d", fake.textCalls)
	}

	row := fx.loadPrompt(t, result.ID)
	if row.GenerationStatus != types.StatusCompleted {
		t.Fatalf("expected status completed, got %q", row.GenerationStatus)
	}
	if row.Title != "Ad for Acme Shoes" {
		t.Fatalf("unexpected title: %q", row.Title)
	}
	if row.FinalPrompt != result.CreativePrompts.FinalPrompt {
		t.Fatalf("final prompt not persisted: %q", row.FinalPrompt)
	}
	if !strings.HasPrefix(row.CleanedPrompt, safePromptPrefix) {
		t.Fatalf("cleaned prompt not sanitized: %q", row.CleanedPrompt)
	}
	if row.ImageURL == "" || row.ImageModel != "dall-e-3" {
		t.Fatalf("image metadata not persisted: url=%q model=%q", row.ImageURL, row.ImageModel)
	}
	if len(row.BrandAnalysis) == 0 || len(row.CreativePrompts) == 0 {
		t.Fatalf("intermediate artifacts not persisted")
	}
	if got := fx.linkCount(t); got != 1 {
		t.Fatalf("expected 1 product-prompt link, got %d", got)
	}
}

func TestGenerateAd_ValidationFailureLeavesNoRow(t *testing.T) {
	fx := newAdGenFixture(t, &fakeOpenAI{})

	form := fx.validForm()
	form.Description = ""
	_, err := fx.svc.GenerateAd(context.Background(), fx.userID, form)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := fx.promptCount(t); got != 0 {
		t.Fatalf("validation failure must not persist a row, found %d", got)
	}
	if fx.fake.textCalls != 0 || fx.fake.imageCalls != 0 {
		t.Fatalf("validation failure must not reach the backend")
	}
}

func TestGenerateAd_ForeignProductRejected(t *testing.T) {
	fx := newAdGenFixture(t, &fakeOpenAI{})

	form := fx.validForm()
	_, err := fx.svc.GenerateAd(context.Background(), uuid.New(), form)

	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if got := fx.promptCount(t); got != 0 {
		t.Fatalf("ownership failure must not persist a row, found %d", got)
	}
}

func TestGenerateAd_TextFailureMarksRowFailed(t *testing.T) {
	fake := &fakeOpenAI{textErr: errors.New("upstream timeout")}
	fx := newAdGenFixture(t, fake)

	_, err := fx.svc.GenerateAd(context.Background(), fx.userID, fx.validForm())
	if err == nil {
		t.Fatalf("expected error")
	}

	if got := fx.promptCount(t); got != 1 {
		t.Fatalf("expected the accepted row to remain, found %d", got)
	}
	var row types.Prompt
	if dberr := fx.db.First(&row).Error; dberr != nil {
		t.Fatalf("loading row: %v", dberr)
	}
	if row.GenerationStatus != types.StatusFailed {
		t.Fatalf("expected status failed, got %q", row.GenerationStatus)
	}
	if row.ErrorMessage == "" {
		t.Fatalf("expected error message recorded")
	}
	if got := fx.linkCount(t); got != 0 {
		t.Fatalf("failed run must not be linked to the product")
	}
}

func TestGenerateAd_ImageRejectionMarksRowFailed(t *testing.T) {
	fake := &fakeOpenAI{
		textResponses: []string{"not json", "still not json"},
		imageErr:      &OpenAIHTTPError{StatusCode: 400, Body: "content policy"},
	}
	fx := newAdGenFixture(t, fake)

	_, err := fx.svc.GenerateAd(context.Background(), fx.userID, fx.validForm())
	if !errors.Is(err, ErrContentPolicy) {
		t.Fatalf("expected content policy rejection, got %v", err)
	}
	if fake.imageCalls != 1 {
		t.Fatalf("rejected image call must not be retried, got %d calls", fake.imageCalls)
	}

	var row types.Prompt
	if dberr := fx.db.First(&row).Error; dberr != nil {
		t.Fatalf("loading row: %v", dberr)
	}
	if row.GenerationStatus != types.StatusFailed {
		t.Fatalf("expected status failed, got %q", row.GenerationStatus)
	}
	if row.ErrorMessage != ErrContentPolicy.Error() {
		t.Fatalf("unexpected error message: %q", row.ErrorMessage)
	}
}

func TestRegenerateImage_RequiresPrompt(t *testing.T) {
	fx := newAdGenFixture(t, &fakeOpenAI{})

	_, err := fx.svc.RegenerateImage(context.Background(), "", "1024x1024")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if fx.fake.imageCalls != 0 {
		t.Fatalf("no backend call expected")
	}
}

func TestRegenerateImage_DoesNotTouchPromptRows(t *testing.T) {
	fx := newAdGenFixture(t, &fakeOpenAI{})

	img, err := fx.svc.RegenerateImage(context.Background(), "a red bottle on white", "1024x1024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL == "" {
		t.Fatalf("expected image url")
	}
	if got := fx.promptCount(t); got != 0 {
		t.Fatalf("regenerate must not create rows, found %d", got)
	}
}

func TestAnalyzeWebsiteOperation_RequiresAllFields(t *testing.T) {
	fx := newAdGenFixture(t, &fakeOpenAI{})

	_, err := fx.svc.AnalyzeWebsite(context.Background(), "Acme", "", "desc")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
