package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type ProductPromptRepo interface {
  Create(ctx context.Context, tx *gorm.DB, links []*types.ProductPrompt) ([]*types.ProductPrompt, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) ([]*types.ProductPrompt, error)
  ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductPrompt, error)
  ListByPromptID(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) ([]*types.ProductPrompt, error)
  ListRecentByOwner(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ProductPrompt, error)
  CountByOwner(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  CountByOwnerBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error)
  Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error
}

type productPromptRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProductPromptRepo(db *gorm.DB, baseLog *logger.Logger) ProductPromptRepo {
  repoLog := baseLog.With("repo", "ProductPromptRepo")
  return &productPromptRepo{db: db, log: repoLog}
}

func (ppr *productPromptRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ProductPrompt) ([]*types.ProductPrompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  if len(links) == 0 {
    return []*types.ProductPrompt{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
    return nil, err
  }
  return links, nil
}

func (ppr *productPromptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, linkIDs []uuid.UUID) ([]*types.ProductPrompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  var results []*types.ProductPrompt
  if len(linkIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Preload("Product").
    Preload("Prompt").
    Where("id IN ?", linkIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ppr *productPromptRepo) ListByProductID(ctx context.Context, tx *gorm.DB, productID uuid.UUID) ([]*types.ProductPrompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  var results []*types.ProductPrompt
  if err := transaction.WithContext(ctx).
    Preload("Prompt").
    Where("product_id = ?", productID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ppr *productPromptRepo) ListByPromptID(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) ([]*types.ProductPrompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  var results []*types.ProductPrompt
  if err := transaction.WithContext(ctx).
    Preload("Product").
    Where("prompt_id = ?", promptID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ppr *productPromptRepo) ListRecentByOwner(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ProductPrompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  owned := transaction.Model(&types.Product{}).Select("id").Where("user_id = ?", userID)
  var results []*types.ProductPrompt
  if err := transaction.WithContext(ctx).
    Preload("Product").
    Preload("Prompt").
    Where("product_id IN (?)", owned).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ppr *productPromptRepo) CountByOwner(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  owned := transaction.Model(&types.Product{}).Select("id").Where("user_id = ?", userID)
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ProductPrompt{}).
    Where("product_id IN (?)", owned).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ppr *productPromptRepo) CountByOwnerBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  owned := transaction.Model(&types.Product{}).Select("id").Where("user_id = ?", userID)
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ProductPrompt{}).
    Where("product_id IN (?) AND created_at >= ? AND created_at <= ?", owned, from, to).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ppr *productPromptRepo) Delete(ctx context.Context, tx *gorm.DB, linkID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ppr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", linkID).
    Delete(&types.ProductPrompt{}).Error
}
