package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/adgenius/adgenius-backend/internal/services"
)

type ProductPromptHandler struct {
  productPromptService services.ProductPromptService
}

func NewProductPromptHandler(productPromptService services.ProductPromptService) *ProductPromptHandler {
  return &ProductPromptHandler{productPromptService: productPromptService}
}

func (pph *ProductPromptHandler) ListByProduct(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("productId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid product id", err)
    return
  }
  links, err := pph.productPromptService.ListByProduct(c.Request.Context(), productID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"productPrompts": links})
}

func (pph *ProductPromptHandler) Delete(c *gin.Context) {
  linkID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid link id", err)
    return
  }
  if err := pph.productPromptService.DeleteLink(c.Request.Context(), linkID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Link deleted successfully"})
}
