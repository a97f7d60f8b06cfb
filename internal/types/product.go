package types

import (
  "time"

  "github.com/google/uuid"
)

type Product struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Name          string        `gorm:"not null;column:name" json:"name"`
  Desc          string        `gorm:"column:description" json:"desc"`
  Website       string        `gorm:"column:website" json:"website"`
  ProductStudy  string        `gorm:"column:product_study" json:"product_study"`
  UserID        uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  User          *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
  CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
  return "product"
}
