package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/adgenius/adgenius-backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Username string `json:"username"`
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  user, token, err := ah.authService.RegisterUser(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{
    "message": "User registered successfully",
    "token":   token,
    "user":    user,
  })
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  user, token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "Authentication failed", err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  RespondOK(c, gin.H{
    "message":    "Login successful",
    "token":      token,
    "expires_in": expiresIn,
    "user":       user,
  })
}

// Logout is stateless: tokens are not tracked server-side, the client
// discards its copy. The endpoint exists so the frontend has a single
// call to end a session.
func (ah *AuthHandler) Logout(c *gin.Context) {
  RespondOK(c, gin.H{"message": "Logout successful"})
}

func (ah *AuthHandler) Me(c *gin.Context) {
  user, err := ah.authService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "Authentication failed", err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}
