package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type ProductPromptService interface {
  ListByProduct(ctx context.Context, productID uuid.UUID) ([]*types.ProductPrompt, error)
  DeleteLink(ctx context.Context, linkID uuid.UUID) error
}

type productPromptService struct {
  db                *gorm.DB
  log               *logger.Logger
  productRepo       repos.ProductRepo
  productPromptRepo repos.ProductPromptRepo
}

func NewProductPromptService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, productPromptRepo repos.ProductPromptRepo) ProductPromptService {
  serviceLog := log.With("service", "ProductPromptService")
  return &productPromptService{
    db:                db,
    log:               serviceLog,
    productRepo:       productRepo,
    productPromptRepo: productPromptRepo,
  }
}

func (pps *productPromptService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*types.ProductPrompt, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if !isElevatedRole(rd.Role) {
    if _, oErr := pps.productRepo.GetOwned(ctx, nil, productID, rd.UserID); oErr != nil {
      return nil, &NotFoundError{Message: "product not found or you do not have permission to access it"}
    }
  }
  return pps.productPromptRepo.ListByProductID(ctx, nil, productID)
}

func (pps *productPromptService) DeleteLink(ctx context.Context, linkID uuid.UUID) error {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return err
  }
  links, err := pps.productPromptRepo.GetByIDs(ctx, nil, []uuid.UUID{linkID})
  if err != nil {
    return fmt.Errorf("failed to load product-prompt link: %w", err)
  }
  if len(links) == 0 {
    return &NotFoundError{Message: "product-prompt link not found"}
  }
  link := links[0]
  if rd.Role != types.RoleAdmin && (link.Product == nil || link.Product.UserID != rd.UserID) {
    return &NotFoundError{Message: "product-prompt link not found or you do not have permission to access it"}
  }
  if err := pps.productPromptRepo.Delete(ctx, nil, linkID); err != nil {
    return fmt.Errorf("failed to delete product-prompt link: %w", err)
  }
  return nil
}
