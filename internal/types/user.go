package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  RoleAdmin   = "ADMIN"
  RoleManager = "MANAGER"
  RoleUser    = "USER"
)

func ValidRole(role string) bool {
  switch role {
  case RoleAdmin, RoleManager, RoleUser:
    return true
  default:
    return false
  }
}

type User struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Username      string        `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Email         string        `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password      string        `gorm:"not null;column:password" json:"-"`
  Role          string        `gorm:"not null;default:USER;column:role" json:"role"`
  IsActive      bool          `gorm:"not null;default:true;column:is_active" json:"is_active"`
  CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
