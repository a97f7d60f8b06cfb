package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "time"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// Domain failure taxonomy for image generation, mapped from backend
// status codes. None of these are retried here; retrying is a caller
// decision and the orchestrator does not retry.
var (
  ErrContentPolicy = errors.New("the prompt contains disallowed content, please modify the product description")
  ErrRateLimited   = errors.New("API limit reached, try again in a few minutes")
  ErrUnauthorized  = errors.New("image generation API key invalid or not configured")
)

const (
  defaultImageSize    = "1024x1024"
  defaultImageQuality = "standard"
)

var allowedImageSizes = map[string]struct{}{
  "1024x1024": {},
  "1024x1792": {},
  "1792x1024": {},
}

type ImageGenerator interface {
  // GenerateAdImage sanitizes the prompt, invokes the image backend once
  // and wraps the result with its generation metadata.
  GenerateAdImage(ctx context.Context, prompt string, size string) (*types.AdImage, error)
}

type imageGenerator struct {
  log    *logger.Logger
  client OpenAIClient
}

func NewImageGenerator(log *logger.Logger, client OpenAIClient) ImageGenerator {
  serviceLog := log.With("service", "ImageGenerator")
  return &imageGenerator{log: serviceLog, client: client}
}

func normalizeImageSize(size string) string {
  if _, ok := allowedImageSizes[size]; ok {
    return size
  }
  return defaultImageSize
}

func (ig *imageGenerator) GenerateAdImage(ctx context.Context, prompt string, size string) (*types.AdImage, error) {
  size = normalizeImageSize(size)
  cleanedPrompt := CleanPromptForImage(prompt)
  ig.log.Info("Generating ad image", "size", size, "prompt_len", len(cleanedPrompt))

  result, err := ig.client.GenerateImage(ctx, cleanedPrompt, size, defaultImageQuality)
  if err != nil {
    return nil, mapImageError(err)
  }

  return &types.AdImage{
    URL:            result.URL,
    Size:           result.Size,
    Prompt:         cleanedPrompt,
    OriginalPrompt: prompt,
    Model:          result.Model,
    Quality:        result.Quality,
    CreatedAt:      time.Now().UTC(),
  }, nil
}

func mapImageError(err error) error {
  var httpErr *OpenAIHTTPError
  if errors.As(err, &httpErr) {
    switch httpErr.StatusCode {
    case http.StatusBadRequest:
      return ErrContentPolicy
    case http.StatusTooManyRequests:
      return ErrRateLimited
    case http.StatusUnauthorized:
      return ErrUnauthorized
    }
  }
  return fmt.Errorf("error generating image: %w", err)
}
