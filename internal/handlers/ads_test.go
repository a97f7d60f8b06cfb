package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adgenius/adgenius-backend/internal/requestdata"
	"github.com/adgenius/adgenius-backend/internal/services"
	"github.com/adgenius/adgenius-backend/internal/types"
)

type fakeAdGenerationService struct {
	lastForm   types.AdFormData
	lastUserID uuid.UUID
	result     *services.AdGenerationResult
	image      *types.AdImage
	profile    *types.BrandProfile
	err        error
}

func (f *fakeAdGenerationService) GenerateAd(ctx context.Context, userID uuid.UUID, form types.AdFormData) (*services.AdGenerationResult, error) {
	f.lastUserID = userID
	f.lastForm = form
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAdGenerationService) RegenerateImage(ctx context.Context, prompt string, size string) (*types.AdImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

func (f *fakeAdGenerationService) AnalyzeWebsite(ctx context.Context, brandName, website, description string) (*types.BrandProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func adsRequest(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx := requestdata.WithRequestData(req.Context(), &requestdata.RequestData{
		UserID: uuid.New(),
		Role:   types.RoleUser,
	})
	c.Request = req.WithContext(ctx)
	handler(c)
	return rec
}

func TestAdsGenerate_ReadsNestedFormData(t *testing.T) {
	fake := &fakeAdGenerationService{result: &services.AdGenerationResult{
		ID:        uuid.New(),
		FormData:  types.AdFormData{ProductName: "Acme Shoes"},
		CreatedAt: time.Now().UTC(),
	}}
	h := NewAdsHandler(fake)

	body := `{"formData":{"productName":"Acme Shoes","website":"https://acme.test","description":"running shoes","productId":"` + uuid.New().String() + `"}}`
	rec := adsRequest(t, h.Generate, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.lastForm.ProductName != "Acme Shoes" || fake.lastForm.Description != "running shoes" {
		t.Fatalf("form data not unwrapped: %+v", fake.lastForm)
	}
}

func TestAdsGenerate_ReturnsResultBundle(t *testing.T) {
	id := uuid.New()
	fake := &fakeAdGenerationService{result: &services.AdGenerationResult{
		ID:             id,
		BrandAnalysis:  &types.BrandProfile{},
		AdImage:        &types.AdImage{URL: "https://images.example.com/ad.png"},
		ProcessingTime: 1234,
	}}
	h := NewAdsHandler(fake)

	rec := adsRequest(t, h.Generate, `{"formData":{"productName":"x","website":"y","description":"z","productId":"p"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload["id"] != id.String() {
		t.Fatalf("expected top-level id, got %v", payload["id"])
	}
	if _, ok := payload["brandAnalysis"]; !ok {
		t.Fatalf("missing brandAnalysis in %v", payload)
	}
	if _, ok := payload["adImage"]; !ok {
		t.Fatalf("missing adImage in %v", payload)
	}
	if payload["processingTime"] != float64(1234) {
		t.Fatalf("unexpected processingTime: %v", payload["processingTime"])
	}
}

func TestAdsRegenerateImage_ResponseShape(t *testing.T) {
	fake := &fakeAdGenerationService{image: &types.AdImage{URL: "https://images.example.com/ad.png"}}
	h := NewAdsHandler(fake)

	rec := adsRequest(t, h.RegenerateImage, `{"prompt":"a red bottle","size":"1024x1024"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if _, ok := payload["adImage"]; !ok {
		t.Fatalf("missing adImage in %v", payload)
	}
	if _, ok := payload["regeneratedAt"]; !ok {
		t.Fatalf("missing regeneratedAt in %v", payload)
	}
}

func TestAdsAnalyzeWebsite_ResponseShape(t *testing.T) {
	fake := &fakeAdGenerationService{profile: &types.BrandProfile{
		BrandInfo: types.BrandInfo{Name: "Acme"},
	}}
	h := NewAdsHandler(fake)

	rec := adsRequest(t, h.AnalyzeWebsite, `{"brandName":"Acme","website":"https://acme.test","description":"d"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if _, ok := payload["brandAnalysis"]; !ok {
		t.Fatalf("missing brandAnalysis in %v", payload)
	}
}
