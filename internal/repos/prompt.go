package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// PromptFilter narrows a prompt listing. Zero values mean "no filter".
// OwnerUserID scopes results to prompts linked to that user's products;
// admins query with OwnerUserID == uuid.Nil to see everything.
type PromptFilter struct {
  Status        string
  ProductID     uuid.UUID
  OwnerUserID   uuid.UUID
  Search        string
  SortBy        string
  SortOrder     string
  Page          int
  Limit         int
}

type PromptRepo interface {
  Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Prompt, error)
  List(ctx context.Context, tx *gorm.DB, filter PromptFilter) ([]*types.Prompt, int64, error)
  Update(ctx context.Context, tx *gorm.DB, promptID uuid.UUID, updates map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) error
}

type promptRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PromptRepo {
  repoLog := baseLog.With("repo", "PromptRepo")
  return &promptRepo{db: db, log: repoLog}
}

func (pr *promptRepo) Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(prompts) == 0 {
    return []*types.Prompt{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&prompts).Error; err != nil {
    return nil, err
  }
  return prompts, nil
}

func (pr *promptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.Prompt
  if len(promptIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", promptIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

var promptSortColumns = map[string]string{
  "created_at":        "created_at",
  "updated_at":        "updated_at",
  "title":             "title",
  "generation_status": "generation_status",
}

func (pr *promptRepo) List(ctx context.Context, tx *gorm.DB, filter PromptFilter) ([]*types.Prompt, int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  query := transaction.WithContext(ctx).Model(&types.Prompt{})

  if filter.Status != "" {
    query = query.Where("generation_status = ?", filter.Status)
  }
  if filter.Search != "" {
    // LOWER/LIKE instead of ILIKE so the query works on every dialect.
    like := "%" + filter.Search + "%"
    query = query.Where(
      "LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(target_audience) LIKE LOWER(?)",
      like, like, like,
    )
  }
  if filter.ProductID != uuid.Nil {
    query = query.Where(
      "id IN (?)",
      transaction.Model(&types.ProductPrompt{}).Select("prompt_id").Where("product_id = ?", filter.ProductID),
    )
  }
  if filter.OwnerUserID != uuid.Nil {
    owned := transaction.Model(&types.Product{}).Select("id").Where("user_id = ?", filter.OwnerUserID)
    query = query.Where(
      "id IN (?)",
      transaction.Model(&types.ProductPrompt{}).Select("prompt_id").Where("product_id IN (?)", owned),
    )
  }

  var total int64
  if err := query.Count(&total).Error; err != nil {
    return nil, 0, err
  }

  sortBy, ok := promptSortColumns[filter.SortBy]
  if !ok {
    sortBy = "created_at"
  }
  order := "DESC"
  if filter.SortOrder == "asc" {
    order = "ASC"
  }
  query = query.Order(sortBy + " " + order)

  if filter.Limit > 0 {
    offset := 0
    if filter.Page > 1 {
      offset = (filter.Page - 1) * filter.Limit
    }
    query = query.Offset(offset).Limit(filter.Limit)
  }

  var results []*types.Prompt
  if err := query.Find(&results).Error; err != nil {
    return nil, 0, err
  }
  return results, total, nil
}

func (pr *promptRepo) Update(ctx context.Context, tx *gorm.DB, promptID uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Prompt{}).
    Where("id = ?", promptID).
    Updates(updates).Error
}

func (pr *promptRepo) Delete(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ?", promptID).
    Delete(&types.Prompt{}).Error
}
