package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type ProductRepo interface {
  Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
  GetOwned(ctx context.Context, tx *gorm.DB, productID, userID uuid.UUID) (*types.Product, error)
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
  ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Product, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  CountByUserIDBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error)
  Update(ctx context.Context, tx *gorm.DB, productID uuid.UUID, updates map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type productRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
  repoLog := baseLog.With("repo", "ProductRepo")
  return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(products) == 0 {
    return []*types.Product{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
    return nil, err
  }
  return products, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Product
  if len(productIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", productIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetOwned returns the product only when it belongs to the given user;
// gorm.ErrRecordNotFound otherwise.
func (pr *productRepo) GetOwned(ctx context.Context, tx *gorm.DB, productID, userID uuid.UUID) (*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var result types.Product
  if err := transaction.WithContext(ctx).
    Where("id = ? AND user_id = ?", productID, userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *productRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Product
  if err := transaction.WithContext(ctx).
    Preload("User").
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Product, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Product
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Product{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (pr *productRepo) CountByUserIDBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Product{}).
    Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, from, to).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (pr *productRepo) Update(ctx context.Context, tx *gorm.DB, productID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Product{}).
    Where("id = ?", productID).
    Updates(updates).Error
}

func (pr *productRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", productID).
    Delete(&types.Product{}).Error
}
