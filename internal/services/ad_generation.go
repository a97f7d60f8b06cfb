package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// ValidationError is raised before any Prompt row exists; the handler
// answers 4xx and no persisted side effect remains.
type ValidationError struct {
  Message string
}

func (e *ValidationError) Error() string {
  return e.Message
}

// NotFoundError distinguishes a missing or foreign-owned resource from a
// malformed request.
type NotFoundError struct {
  Message string
}

func (e *NotFoundError) Error() string {
  return e.Message
}

// AdGenerationResult is the bundle returned to the client on a completed
// generation.
type AdGenerationResult struct {
  ID               uuid.UUID             `json:"id"`
  BrandAnalysis    *types.BrandProfile   `json:"brandAnalysis"`
  CreativePrompts  *types.CreativeBrief  `json:"creativePrompts"`
  AdImage          *types.AdImage        `json:"adImage"`
  FormData         types.AdFormData      `json:"formData"`
  ProcessingTime   int64                 `json:"processingTime"`
  CreatedAt        time.Time             `json:"createdAt"`
}

type AdGenerationService interface {
  GenerateAd(ctx context.Context, userID uuid.UUID, form types.AdFormData) (*AdGenerationResult, error)
  RegenerateImage(ctx context.Context, prompt string, size string) (*types.AdImage, error)
  AnalyzeWebsite(ctx context.Context, brandName, website, description string) (*types.BrandProfile, error)
}

type adGenerationService struct {
  log               *logger.Logger
  productRepo       repos.ProductRepo
  promptRepo        repos.PromptRepo
  productPromptRepo repos.ProductPromptRepo
  analyzer          BrandAnalyzer
  creative          CreativePromptGenerator
  imageGen          ImageGenerator
}

func NewAdGenerationService(
  log *logger.Logger,
  productRepo repos.ProductRepo,
  promptRepo repos.PromptRepo,
  productPromptRepo repos.ProductPromptRepo,
  analyzer BrandAnalyzer,
  creative CreativePromptGenerator,
  imageGen ImageGenerator,
) AdGenerationService {
  serviceLog := log.With("service", "AdGenerationService")
  return &adGenerationService{
    log:               serviceLog,
    productRepo:       productRepo,
    promptRepo:        promptRepo,
    productPromptRepo: productPromptRepo,
    analyzer:          analyzer,
    creative:          creative,
    imageGen:          imageGen,
  }
}

// generationRun carries the in-memory context of one generation attempt
// between step transitions. The Prompt row exists in "generating" state
// from acceptance onward and moves exactly once to "completed" or
// "failed"; each transition is an independent write, no transaction wraps
// the sequence.
type generationRun struct {
  promptID   uuid.UUID
  productID  uuid.UUID
  form       types.AdFormData
  startedAt  time.Time
  createdAt  time.Time

  profile    *types.BrandProfile
  brief      *types.CreativeBrief
  adImage    *types.AdImage
}

func (s *adGenerationService) GenerateAd(ctx context.Context, userID uuid.UUID, form types.AdFormData) (*AdGenerationResult, error) {
  run, err := s.acceptRequest(ctx, userID, form)
  if err != nil {
    return nil, err
  }

  s.log.Info("Starting ad generation", "prompt_id", run.promptID, "product", form.ProductName)

  if err := s.runBrandAnalysis(ctx, run); err != nil {
    return nil, s.failRun(ctx, run, err)
  }
  if err := s.runCreativeBrief(ctx, run); err != nil {
    return nil, s.failRun(ctx, run, err)
  }
  if err := s.runImageGeneration(ctx, run); err != nil {
    return nil, s.failRun(ctx, run, err)
  }

  return s.completeRun(ctx, run)
}

// acceptRequest validates the request and, only once it is known to be
// well-formed, creates the Prompt row in "generating" state. Validation
// failures therefore leave no row at all.
func (s *adGenerationService) acceptRequest(ctx context.Context, userID uuid.UUID, form types.AdFormData) (*generationRun, error) {
  if form.ProductName == "" || form.Website == "" || form.Description == "" {
    return nil, &ValidationError{Message: "productName, website and description are required"}
  }
  if form.ProductID == "" {
    return nil, &ValidationError{Message: "productId is required to generate an ad"}
  }
  productID, err := uuid.Parse(form.ProductID)
  if err != nil {
    return nil, &ValidationError{Message: "productId is not a valid id"}
  }

  if _, err := s.productRepo.GetOwned(ctx, nil, productID, userID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, &NotFoundError{Message: "product not found or you do not have permission to use it"}
    }
    return nil, fmt.Errorf("checking product ownership: %w", err)
  }

  if form.ImageSize == "" {
    form.ImageSize = defaultImageSize
  }
  formJSON, err := json.Marshal(form)
  if err != nil {
    return nil, fmt.Errorf("encoding form data: %w", err)
  }

  now := time.Now()
  prompt := &types.Prompt{
    ID:                     uuid.New(),
    Title:                  fmt.Sprintf("Ad for %s", form.ProductName),
    Description:            form.Description,
    TargetAudience:         form.TargetAudience,
    AdStyle:                form.AdStyle,
    ColorScheme:            form.ColorScheme,
    Typography:             form.Typography,
    ImageSize:              form.ImageSize,
    AdditionalInstructions: form.AdditionalInstructions,
    OriginalFormData:       datatypes.JSON(formJSON),
    GenerationStatus:       types.StatusGenerating,
    FinalPrompt:            "In progress...",
  }
  created, err := s.promptRepo.Create(ctx, nil, []*types.Prompt{prompt})
  if err != nil {
    return nil, fmt.Errorf("creating prompt record: %w", err)
  }

  return &generationRun{
    promptID:  created[0].ID,
    productID: productID,
    form:      form,
    startedAt: now,
    createdAt: created[0].CreatedAt,
  }, nil
}

func (s *adGenerationService) runBrandAnalysis(ctx context.Context, run *generationRun) error {
  profile, _, err := s.analyzer.AnalyzeWebsite(ctx, BrandInput{
    BrandName:   run.form.ProductName,
    Website:     run.form.Website,
    Description: run.form.Description,
  })
  if err != nil {
    return err
  }
  run.profile = profile
  return nil
}

func (s *adGenerationService) runCreativeBrief(ctx context.Context, run *generationRun) error {
  brief, _, err := s.creative.GeneratePrompts(ctx, run.profile, StylePrefs{
    TargetAudience:         run.form.TargetAudience,
    AdStyle:                run.form.AdStyle,
    ColorScheme:            run.form.ColorScheme,
    Typography:             run.form.Typography,
    AdditionalInstructions: run.form.AdditionalInstructions,
  })
  if err != nil {
    return err
  }
  run.brief = brief
  return nil
}

func (s *adGenerationService) runImageGeneration(ctx context.Context, run *generationRun) error {
  adImage, err := s.imageGen.GenerateAdImage(ctx, run.brief.FinalPrompt, run.form.ImageSize)
  if err != nil {
    return err
  }
  run.adImage = adImage
  return nil
}

// failRun transitions the Prompt row to "failed" with the captured
// message and elapsed duration, then hands the original error back so the
// HTTP layer can report it.
func (s *adGenerationService) failRun(ctx context.Context, run *generationRun, cause error) error {
  elapsed := time.Since(run.startedAt).Milliseconds()
  updates := map[string]interface{}{
    "generation_status": types.StatusFailed,
    "error_message":     cause.Error(),
    "processing_time":   elapsed,
  }
  if err := s.promptRepo.Update(ctx, nil, run.promptID, updates); err != nil {
    s.log.Error("Failed to mark prompt as failed", "prompt_id", run.promptID, "error", err)
  }
  s.log.Warn("Ad generation failed", "prompt_id", run.promptID, "error", cause.Error(), "elapsed_ms", elapsed)
  return cause
}

// completeRun persists every intermediate and final artifact, links the
// prompt to its product and returns the result bundle.
func (s *adGenerationService) completeRun(ctx context.Context, run *generationRun) (*AdGenerationResult, error) {
  elapsed := time.Since(run.startedAt).Milliseconds()

  profileJSON, err := json.Marshal(run.profile)
  if err != nil {
    return nil, s.failRun(ctx, run, fmt.Errorf("encoding brand analysis: %w", err))
  }
  briefJSON, err := json.Marshal(run.brief)
  if err != nil {
    return nil, s.failRun(ctx, run, fmt.Errorf("encoding creative brief: %w", err))
  }

  updates := map[string]interface{}{
    "brand_analysis":    datatypes.JSON(profileJSON),
    "creative_prompts":  datatypes.JSON(briefJSON),
    "final_prompt":      run.brief.FinalPrompt,
    "cleaned_prompt":    run.adImage.Prompt,
    "image_url":         run.adImage.URL,
    "image_model":       run.adImage.Model,
    "image_quality":     run.adImage.Quality,
    "generation_status": types.StatusCompleted,
    "processing_time":   elapsed,
  }
  if err := s.promptRepo.Update(ctx, nil, run.promptID, updates); err != nil {
    return nil, s.failRun(ctx, run, fmt.Errorf("persisting completed generation: %w", err))
  }

  link := &types.ProductPrompt{
    ID:        uuid.New(),
    ProductID: run.productID,
    PromptID:  run.promptID,
  }
  if _, err := s.productPromptRepo.Create(ctx, nil, []*types.ProductPrompt{link}); err != nil {
    return nil, fmt.Errorf("linking prompt to product: %w", err)
  }

  s.log.Info("Ad generated successfully", "prompt_id", run.promptID, "elapsed_ms", elapsed)

  return &AdGenerationResult{
    ID:              run.promptID,
    BrandAnalysis:   run.profile,
    CreativePrompts: run.brief,
    AdImage:         run.adImage,
    FormData:        run.form,
    ProcessingTime:  elapsed,
    CreatedAt:       run.createdAt,
  }, nil
}

// RegenerateImage reruns only the sanitize + image steps with a caller
// supplied prompt; no Prompt row is touched.
func (s *adGenerationService) RegenerateImage(ctx context.Context, prompt string, size string) (*types.AdImage, error) {
  if prompt == "" {
    return nil, &ValidationError{Message: "a prompt is required to generate the image"}
  }
  return s.imageGen.GenerateAdImage(ctx, prompt, size)
}

// AnalyzeWebsite runs only the brand-analysis step.
func (s *adGenerationService) AnalyzeWebsite(ctx context.Context, brandName, website, description string) (*types.BrandProfile, error) {
  if brandName == "" || website == "" || description == "" {
    return nil, &ValidationError{Message: "brandName, website and description are required"}
  }
  profile, _, err := s.analyzer.AnalyzeWebsite(ctx, BrandInput{
    BrandName:   brandName,
    Website:     website,
    Description: description,
  })
  return profile, err
}
