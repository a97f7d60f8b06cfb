package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/adgenius/adgenius-backend/internal/requestdata"
  "github.com/adgenius/adgenius-backend/internal/services"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type AdsHandler struct {
  adGenerationService services.AdGenerationService
}

func NewAdsHandler(adGenerationService services.AdGenerationService) *AdsHandler {
  return &AdsHandler{adGenerationService: adGenerationService}
}

func (ah *AdsHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "Access denied", nil)
    return
  }
  var req struct {
    FormData types.AdFormData `json:"formData"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  result, err := ah.adGenerationService.GenerateAd(c.Request.Context(), rd.UserID, req.FormData)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}

func (ah *AdsHandler) RegenerateImage(c *gin.Context) {
  var req struct {
    Prompt string `json:"prompt"`
    Size   string `json:"size"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  image, err := ah.adGenerationService.RegenerateImage(c.Request.Context(), req.Prompt, req.Size)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"adImage": image, "regeneratedAt": time.Now().UTC()})
}

func (ah *AdsHandler) AnalyzeWebsite(c *gin.Context) {
  var req struct {
    BrandName   string `json:"brandName"`
    Website     string `json:"website"`
    Description string `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  profile, err := ah.adGenerationService.AnalyzeWebsite(c.Request.Context(), req.BrandName, req.Website, req.Description)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"brandAnalysis": profile})
}
