package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "math/rand"
  "net"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/adgenius/adgenius-backend/internal/logger"
)

// OpenAIClient is the capability provider for both external calls the
// pipeline makes: free-text JSON generation and image generation. It is
// injected into the services at construction time so tests can substitute
// a double.
type OpenAIClient interface {
  GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error)
  GenerateImage(ctx context.Context, prompt string, size string, quality string) (*ImageResult, error)
}

// ImageResult is the raw image-backend answer before it is wrapped into a
// types.AdImage by the image service.
type ImageResult struct {
  URL     string
  Model   string
  Size    string
  Quality string
}

type openAIClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  imageModel string
  httpClient *http.Client

  maxRetries int
}

func NewOpenAIClient(log *logger.Logger) (OpenAIClient, error) {
  apiKey := os.Getenv("OPENAI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing OPENAI_API_KEY")
  }

  baseURL := os.Getenv("OPENAI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }

  model := os.Getenv("OPENAI_MODEL")
  if model == "" {
    model = "gpt-4"
  }

  imageModel := os.Getenv("OPENAI_IMAGE_MODEL")
  if imageModel == "" {
    imageModel = "dall-e-3"
  }

  // Image generation regularly takes over a minute.
  timeoutSec := 180
  if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  // Retries apply to the text path only; images are never retried here,
  // the caller decides whether a failed generation is rerun.
  maxRetries := 0
  if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
      maxRetries = parsed
    }
  }

  return &openAIClient{
    log:        log.With("service", "OpenAIClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    imageModel: imageModel,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    maxRetries: maxRetries,
  }, nil
}

// OpenAIHTTPError carries the backend status code so callers can map it
// onto the domain failure taxonomy (content policy, rate limit, auth).
type OpenAIHTTPError struct {
  StatusCode int
  Body       string
}

func (e *OpenAIHTTPError) Error() string {
  return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
  if code == 408 || code == 429 {
    return true
  }
  return code >= 500 && code <= 599
}

func isRetryableErr(err error) bool {
  if err == nil {
    return false
  }
  if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
    return true
  }
  var netErr net.Error
  if errors.As(err, &netErr) {
    if netErr.Timeout() {
      return true
    }
  }
  var httpErr *OpenAIHTTPError
  if errors.As(err, &httpErr) {
    return isRetryableHTTP(httpErr.StatusCode)
  }
  return false
}

func jitterSleep(base time.Duration) time.Duration {
  // +/- 20%
  if base <= 0 {
    return 0
  }
  j := 0.2
  delta := base.Seconds() * j
  low := base.Seconds() - delta
  high := base.Seconds() + delta
  if low < 0 {
    low = 0
  }
  v := low + rand.Float64()*(high-low)
  return time.Duration(v * float64(time.Second))
}

func (c *openAIClient) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
  var buf bytes.Buffer
  if body != nil {
    if err := json.NewEncoder(&buf).Encode(body); err != nil {
      return nil, nil, err
    }
  }

  req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
  if err != nil {
    return nil, nil, err
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    return nil, nil, err
  }

  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return resp, nil, readErr
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return resp, raw, &OpenAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }
  return resp, raw, nil
}

func (c *openAIClient) do(ctx context.Context, method, path string, body any, out any, maxRetries int) error {
  backoff := 1 * time.Second

  for attempt := 0; attempt <= maxRetries; attempt++ {
    if ctx.Err() != nil {
      return ctx.Err()
    }

    resp, raw, err := c.doOnce(ctx, method, path, body)
    if err == nil {
      if out == nil {
        return nil
      }
      if uErr := json.Unmarshal(raw, out); uErr != nil {
        return fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
      }
      return nil
    }

    if !isRetryableErr(err) {
      return err
    }
    if attempt == maxRetries {
      return err
    }

    // Respect Retry-After when present
    sleepFor := backoff
    if resp != nil {
      ra := strings.TrimSpace(resp.Header.Get("Retry-After"))
      if ra != "" {
        if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
          sleepFor = time.Duration(secs) * time.Second
        }
      }
    }
    if sleepFor > 10*time.Second {
      sleepFor = 10 * time.Second
    }
    sleepFor = jitterSleep(sleepFor)

    c.log.Warn("OpenAI request retrying",
      "path", path,
      "attempt", attempt+1,
      "max_retries", maxRetries,
      "sleep", sleepFor.String(),
      "error", err.Error(),
    )

    time.Sleep(sleepFor)
    backoff *= 2
  }

  return fmt.Errorf("unreachable retry loop")
}

// ---- Chat completions ----

type chatCompletionsRequest struct {
  Model    string `json:"model"`
  Messages []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  } `json:"messages"`
  Temperature float64 `json:"temperature,omitempty"`
  MaxTokens   int     `json:"max_tokens,omitempty"`
}

type chatCompletionsResponse struct {
  Choices []struct {
    Message struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    } `json:"message"`
    FinishReason string `json:"finish_reason"`
  } `json:"choices"`
}

func (c *openAIClient) GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error) {
  req := chatCompletionsRequest{
    Model: c.model,
    Messages: []struct {
      Role    string `json:"role"`
      Content string `json:"content"`
    }{
      {Role: "system", Content: system},
      {Role: "user", Content: user},
    },
    Temperature: temperature,
    MaxTokens:   2000,
  }

  var resp chatCompletionsResponse
  if err := c.do(ctx, "POST", "/v1/chat/completions", req, &resp, c.maxRetries); err != nil {
    return "", err
  }
  if len(resp.Choices) == 0 {
    return "", fmt.Errorf("no choices in completion response")
  }
  return resp.Choices[0].Message.Content, nil
}

// ---- Image generation ----

type imagesRequest struct {
  Model          string `json:"model"`
  Prompt         string `json:"prompt"`
  N              int    `json:"n"`
  Size           string `json:"size"`
  Quality        string `json:"quality"`
  ResponseFormat string `json:"response_format"`
}

type imagesResponse struct {
  Data []struct {
    URL string `json:"url"`
  } `json:"data"`
}

// GenerateImage performs exactly one backend call; retry policy is a
// caller decision.
func (c *openAIClient) GenerateImage(ctx context.Context, prompt string, size string, quality string) (*ImageResult, error) {
  req := imagesRequest{
    Model:          c.imageModel,
    Prompt:         prompt,
    N:              1,
    Size:           size,
    Quality:        quality,
    ResponseFormat: "url",
  }

  var resp imagesResponse
  if err := c.do(ctx, "POST", "/v1/images/generations", req, &resp, 0); err != nil {
    return nil, err
  }
  if len(resp.Data) == 0 || resp.Data[0].URL == "" {
    return nil, fmt.Errorf("no image url in response")
  }
  return &ImageResult{
    URL:     resp.Data[0].URL,
    Model:   c.imageModel,
    Size:    size,
    Quality: quality,
  }, nil
}
