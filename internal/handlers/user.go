package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/adgenius/adgenius-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) List(c *gin.Context) {
  users, err := uh.userService.ListUsers(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"users": users})
}

func (uh *UserHandler) Get(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid user id", err)
    return
  }
  user, err := uh.userService.GetUser(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) Create(c *gin.Context) {
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
  user, err := uh.userService.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

func (uh *UserHandler) Update(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid user id", err)
    return
  }
  var req struct {
    Username *string `json:"username"`
    Email    *string `json:"email"`
    Password *string `json:"password"`
    Role     *string `json:"role"`
    IsActive *bool   `json:"is_active"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid request body", err)
    return
  }
  user, err := uh.userService.UpdateUser(c.Request.Context(), userID, services.UserUpdate{
    Username: req.Username,
    Email:    req.Email,
    Password: req.Password,
    Role:     req.Role,
    IsActive: req.IsActive,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "User updated successfully", "user": user})
}

func (uh *UserHandler) Delete(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "Invalid user id", err)
    return
  }
  if err := uh.userService.DeleteUser(c.Request.Context(), userID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"message": "User deleted successfully"})
}
