package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/requestdata"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// PromptPage is one page of a filtered prompt listing.
type PromptPage struct {
  Prompts     []*types.Prompt   `json:"prompts"`
  Total       int64             `json:"total"`
  Page        int               `json:"page"`
  Limit       int               `json:"limit"`
}

type PromptService interface {
  ListPrompts(ctx context.Context, filter repos.PromptFilter) (*PromptPage, error)
  GetPrompt(ctx context.Context, promptID uuid.UUID) (*types.Prompt, error)
  DeletePrompt(ctx context.Context, promptID uuid.UUID) error
}

type promptService struct {
  db                *gorm.DB
  log               *logger.Logger
  promptRepo        repos.PromptRepo
  productPromptRepo repos.ProductPromptRepo
}

func NewPromptService(db *gorm.DB, log *logger.Logger, promptRepo repos.PromptRepo, productPromptRepo repos.ProductPromptRepo) PromptService {
  serviceLog := log.With("service", "PromptService")
  return &promptService{db: db, log: serviceLog, promptRepo: promptRepo, productPromptRepo: productPromptRepo}
}

// ListPrompts scopes non-admin callers to prompts linked to their own
// products; ADMIN sees every prompt.
func (ps *promptService) ListPrompts(ctx context.Context, filter repos.PromptFilter) (*PromptPage, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if rd.Role != types.RoleAdmin {
    filter.OwnerUserID = rd.UserID
  }
  if filter.Limit <= 0 {
    filter.Limit = 10
  }
  if filter.Page <= 0 {
    filter.Page = 1
  }

  prompts, total, lErr := ps.promptRepo.List(ctx, nil, filter)
  if lErr != nil {
    return nil, fmt.Errorf("failed to list prompts: %w", lErr)
  }
  return &PromptPage{
    Prompts: prompts,
    Total:   total,
    Page:    filter.Page,
    Limit:   filter.Limit,
  }, nil
}

// canAccessPrompt reports whether the caller may touch the prompt: ADMIN
// always, everyone else only through a linked product they own. Prompts
// with no links stay admin-only.
func (ps *promptService) canAccessPrompt(ctx context.Context, rd *requestdata.RequestData, promptID uuid.UUID) (bool, error) {
  if rd.Role == types.RoleAdmin {
    return true, nil
  }
  links, err := ps.productPromptRepo.ListByPromptID(ctx, nil, promptID)
  if err != nil {
    return false, fmt.Errorf("failed to load prompt links: %w", err)
  }
  for _, link := range links {
    if link.Product != nil && link.Product.UserID == rd.UserID {
      return true, nil
    }
  }
  return false, nil
}

func (ps *promptService) GetPrompt(ctx context.Context, promptID uuid.UUID) (*types.Prompt, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  prompts, err := ps.promptRepo.GetByIDs(ctx, nil, []uuid.UUID{promptID})
  if err != nil {
    return nil, fmt.Errorf("failed to load prompt: %w", err)
  }
  if len(prompts) == 0 {
    return nil, &NotFoundError{Message: "prompt not found"}
  }
  ok, aErr := ps.canAccessPrompt(ctx, rd, promptID)
  if aErr != nil {
    return nil, aErr
  }
  if !ok {
    return nil, &NotFoundError{Message: "prompt not found or you do not have permission to access it"}
  }
  return prompts[0], nil
}

// DeletePrompt is administrative CRUD; the generation pipeline itself
// never deletes rows.
func (ps *promptService) DeletePrompt(ctx context.Context, promptID uuid.UUID) error {
  if _, err := ps.GetPrompt(ctx, promptID); err != nil {
    return err
  }
  if err := ps.promptRepo.Delete(ctx, nil, promptID); err != nil {
    return fmt.Errorf("failed to delete prompt: %w", err)
  }
  return nil
}
