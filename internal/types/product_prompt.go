package types

import (
  "time"

  "github.com/google/uuid"
)

// ProductPrompt links an advertised product to one generation attempt.
// A given (product, prompt) pair appears at most once.
type ProductPrompt struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  ProductID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_product_prompt;column:product_id" json:"product_id"`
  PromptID      uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_product_prompt;column:prompt_id" json:"prompt_id"`
  Product       *Product      `gorm:"foreignKey:ProductID" json:"product,omitempty"`
  Prompt        *Prompt       `gorm:"foreignKey:PromptID" json:"prompt,omitempty"`
  CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
}

func (ProductPrompt) TableName() string {
  return "product_prompt"
}
