package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Generation lifecycle of a Prompt row. A row is created in
// StatusGenerating and moves exactly once to StatusCompleted or
// StatusFailed; a failed generation is never retried in place.
const (
  StatusGenerating = "generating"
  StatusCompleted  = "completed"
  StatusFailed     = "failed"
)

type Prompt struct {
  ID                      uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
  Title                   string            `gorm:"not null;column:title" json:"title"`
  Description             string            `gorm:"column:description" json:"description"`
  TargetAudience          string            `gorm:"column:target_audience" json:"target_audience"`
  AdStyle                 string            `gorm:"column:ad_style" json:"ad_style"`
  ColorScheme             string            `gorm:"column:color_scheme" json:"color_scheme"`
  Typography              string            `gorm:"column:typography" json:"typography"`
  ImageSize               string            `gorm:"column:image_size" json:"image_size"`
  AdditionalInstructions  string            `gorm:"column:additional_instructions" json:"additional_instructions"`
  OriginalFormData        datatypes.JSON    `gorm:"column:original_form_data" json:"original_form_data"`
  GenerationStatus        string            `gorm:"not null;default:generating;index;column:generation_status" json:"generation_status"`
  BrandAnalysis           datatypes.JSON    `gorm:"column:brand_analysis" json:"brand_analysis,omitempty"`
  CreativePrompts         datatypes.JSON    `gorm:"column:creative_prompts" json:"creative_prompts,omitempty"`
  FinalPrompt             string            `gorm:"not null;column:final_prompt" json:"final_prompt"`
  CleanedPrompt           string            `gorm:"column:cleaned_prompt" json:"cleaned_prompt"`
  ImageURL                string            `gorm:"column:image_url" json:"image_url"`
  ImageModel              string            `gorm:"column:image_model" json:"image_model"`
  ImageQuality            string            `gorm:"column:image_quality" json:"image_quality"`
  ErrorMessage            string            `gorm:"column:error_message" json:"error_message,omitempty"`
  ProcessingTime          int64             `gorm:"column:processing_time" json:"processing_time"`
  CreatedAt               time.Time         `gorm:"not null" json:"created_at"`
  UpdatedAt               time.Time         `gorm:"not null" json:"updated_at"`
}

func (Prompt) TableName() string {
  return "prompt"
}
