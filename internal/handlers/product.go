package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/adgenius/adgenius-backend/internal/services"
)

type ProductHandler struct {
  productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
  return &ProductHandler{productService: productService}
}

type productRequest struct {
  Name         string `json:"name"`
  Desc         string `json:"desc"`
  Website      string `json:"website"`
  ProductStudy string `json:"product_study"`
}

func (ph *ProductHandler) List(c *gin.Context) {
  products, err := ph.productService.ListProducts(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"products": products})
}

func (ph *ProductHandler) Get(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid product id", err)
    return
  }
  product, err := ph.productService.GetProduct(c.Request.Context(), productID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) Create(c *gin.Context) {
  var req productRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  product, err := ph.productService.CreateProduct(c.Request.Context(), services.ProductInput{
    Name:         req.Name,
    Desc:         req.Desc,
    Website:      req.Website,
    ProductStudy: req.ProductStudy,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

func (ph *ProductHandler) Update(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid product id", err)
    return
  }
  var req productRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  product, err := ph.productService.UpdateProduct(c.Request.Context(), productID, services.ProductInput{
    Name:         req.Name,
    Desc:         req.Desc,
    Website:      req.Website,
    ProductStudy: req.ProductStudy,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Product updated successfully", "product": product})
}

func (ph *ProductHandler) Delete(c *gin.Context) {
  productID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid product id", err)
    return
  }
  if err := ph.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "Product deleted successfully"})
}
