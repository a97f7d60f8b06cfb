package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/requestdata"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type ProductInput struct {
  Name          string
  Desc          string
  Website       string
  ProductStudy  string
}

type ProductService interface {
  ListProducts(ctx context.Context) ([]*types.Product, error)
  GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error)
  CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error)
  UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error)
  DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

type productService struct {
  db          *gorm.DB
  log         *logger.Logger
  productRepo repos.ProductRepo
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo) ProductService {
  serviceLog := log.With("service", "ProductService")
  return &productService{db: db, log: serviceLog, productRepo: productRepo}
}

func requesterFromContext(ctx context.Context) (*requestdata.RequestData, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("no authenticated user in context")
  }
  return rd, nil
}

func isElevatedRole(role string) bool {
  return role == types.RoleAdmin || role == types.RoleManager
}

// ListProducts scopes results to the requesting user's own products;
// ADMIN and MANAGER see everything.
func (ps *productService) ListProducts(ctx context.Context) ([]*types.Product, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if isElevatedRole(rd.Role) {
    return ps.productRepo.ListAll(ctx, nil)
  }
  return ps.productRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (ps *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if isElevatedRole(rd.Role) {
    products, gErr := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
    if gErr != nil {
      return nil, fmt.Errorf("failed to load product: %w", gErr)
    }
    if len(products) == 0 {
      return nil, &NotFoundError{Message: "product not found"}
    }
    return products[0], nil
  }
  product, gErr := ps.productRepo.GetOwned(ctx, nil, productID, rd.UserID)
  if gErr != nil {
    if errors.Is(gErr, gorm.ErrRecordNotFound) {
      return nil, &NotFoundError{Message: "product not found or you do not have permission to access it"}
    }
    return nil, fmt.Errorf("failed to load product: %w", gErr)
  }
  return product, nil
}

func (ps *productService) CreateProduct(ctx context.Context, input ProductInput) (*types.Product, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  if input.Name == "" {
    return nil, &ValidationError{Message: "product name is required"}
  }
  product := &types.Product{
    ID:           uuid.New(),
    Name:         input.Name,
    Desc:         input.Desc,
    Website:      input.Website,
    ProductStudy: input.ProductStudy,
    UserID:       rd.UserID,
  }
  if _, cErr := ps.productRepo.Create(ctx, nil, []*types.Product{product}); cErr != nil {
    return nil, fmt.Errorf("failed to create product: %w", cErr)
  }
  return product, nil
}

func (ps *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, input ProductInput) (*types.Product, error) {
  if _, err := ps.GetProduct(ctx, productID); err != nil {
    return nil, err
  }
  if input.Name == "" {
    return nil, &ValidationError{Message: "product name is required"}
  }
  updates := map[string]interface{}{
    "name":          input.Name,
    "description":   input.Desc,
    "website":       input.Website,
    "product_study": input.ProductStudy,
  }
  if err := ps.productRepo.Update(ctx, nil, productID, updates); err != nil {
    return nil, fmt.Errorf("failed to update product: %w", err)
  }
  return ps.GetProduct(ctx, productID)
}

func (ps *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
  if _, err := ps.GetProduct(ctx, productID); err != nil {
    return err
  }
  if err := ps.productRepo.Delete(ctx, nil, productID); err != nil {
    return fmt.Errorf("failed to delete product: %w", err)
  }
  return nil
}
