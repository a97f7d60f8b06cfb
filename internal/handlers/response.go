package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/adgenius/adgenius-backend/internal/services"
)

func RespondError(c *gin.Context, status int, title string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, gin.H{"error": title, "message": msg})
}

// RespondServiceError maps service-layer failures onto HTTP statuses.
// Validation problems and unknown resources stay 4xx; image backend
// failures keep the status class of the upstream rejection.
func RespondServiceError(c *gin.Context, err error) {
  var vErr *services.ValidationError
  if errors.As(err, &vErr) {
    RespondError(c, http.StatusBadRequest, "Validation failed", err)
    return
  }
  var nfErr *services.NotFoundError
  if errors.As(err, &nfErr) {
    RespondError(c, http.StatusNotFound, "Not found", err)
    return
  }
  switch {
  case errors.Is(err, services.ErrContentPolicy):
    RespondError(c, http.StatusBadRequest, "Content policy violation", err)
  case errors.Is(err, services.ErrRateLimited):
    RespondError(c, http.StatusTooManyRequests, "Rate limit exceeded", err)
  case errors.Is(err, services.ErrUnauthorized):
    RespondError(c, http.StatusUnauthorized, "Image API unauthorized", err)
  default:
    RespondError(c, http.StatusInternalServerError, "Internal server error", err)
  }
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
