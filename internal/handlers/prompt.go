package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/services"
)

type PromptHandler struct {
  promptService services.PromptService
}

func NewPromptHandler(promptService services.PromptService) *PromptHandler {
  return &PromptHandler{promptService: promptService}
}

func (ph *PromptHandler) List(c *gin.Context) {
  filter := repos.PromptFilter{
    Status:    c.Query("status"),
    Search:    c.Query("search"),
    SortBy:    c.Query("sortBy"),
    SortOrder: c.Query("sortOrder"),
  }
  if rawProductID := c.Query("productId"); rawProductID != "" {
    productID, err := uuid.Parse(rawProductID)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "Invalid product id", err)
      return
    }
    filter.ProductID = productID
  }
  if rawPage := c.Query("page"); rawPage != "" {
    if page, err := strconv.Atoi(rawPage); err == nil {
      filter.Page = page
    }
  }
  if rawLimit := c.Query("limit"); rawLimit != "" {
    if limit, err := strconv.Atoi(rawLimit); err == nil {
      filter.Limit = limit
    }
  }
  page, err := ph.promptService.ListPrompts(c.Request.Context(), filter)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, page)
}

func (ph *PromptHandler) Get(c *gin.Context) {
  promptID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid prompt id", err)
    return
  }
  prompt, err := ph.promptService.GetPrompt(c.Request.Context(), promptID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"prompt": prompt})
}

func (ph *PromptHandler) Delete(c *gin.Context) {
  promptID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid prompt id", err)
    return
  }
  if err := ph.promptService.DeletePrompt(c.Request.Context(), promptID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Prompt deleted successfully"})
}
