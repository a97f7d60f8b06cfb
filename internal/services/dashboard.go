package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  goredis "github.com/redis/go-redis/v9"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type CountStat struct {
  Total     int64   `json:"total"`
  ThisWeek  int64   `json:"thisWeek"`
  Growth    string  `json:"growth"`
}

type ProductivityStat struct {
  AveragePromptsPerProduct  string  `json:"averagePromptsPerProduct"`
  WeeklyAverage             string  `json:"weeklyAverage"`
}

type DashboardStats struct {
  Products      CountStat         `json:"products"`
  Prompts       CountStat         `json:"prompts"`
  Productivity  ProductivityStat  `json:"productivity"`
}

type DashboardData struct {
  Stats           DashboardStats          `json:"stats"`
  RecentProducts  []*types.Product        `json:"recentProducts"`
  RecentActivity  []*types.ProductPrompt  `json:"recentActivity"`
}

type DashboardService interface {
  GetStats(ctx context.Context) (*DashboardData, error)
  GetUserProducts(ctx context.Context) ([]*types.Product, error)
}

type dashboardService struct {
  db                *gorm.DB
  log               *logger.Logger
  productRepo       repos.ProductRepo
  productPromptRepo repos.ProductPromptRepo
  rdb               *goredis.Client
  cacheTTL          time.Duration
}

// NewDashboardService builds the aggregate endpoint backing the landing
// dashboard. rdb may be nil; stats are then computed on every request.
func NewDashboardService(
  db *gorm.DB,
  log *logger.Logger,
  productRepo repos.ProductRepo,
  productPromptRepo repos.ProductPromptRepo,
  rdb *goredis.Client,
) DashboardService {
  serviceLog := log.With("service", "DashboardService")
  return &dashboardService{
    db:                db,
    log:               serviceLog,
    productRepo:       productRepo,
    productPromptRepo: productPromptRepo,
    rdb:               rdb,
    cacheTTL:          60 * time.Second,
  }
}

// weekWindow returns the Monday 00:00:00 .. Sunday 23:59:59 window
// containing now.
func weekWindow(now time.Time) (time.Time, time.Time) {
  dayOfWeek := int(now.Weekday())
  diff := -(dayOfWeek - 1)
  if dayOfWeek == 0 {
    diff = -6
  }
  start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, diff)
  end := start.AddDate(0, 0, 6).Add(24*time.Hour - time.Nanosecond)
  return start, end
}

func growthPercent(total, thisWeek int64) string {
  if total <= 0 {
    return "0"
  }
  base := total - thisWeek
  if base < 1 {
    base = 1
  }
  return fmt.Sprintf("%.1f", float64(thisWeek)/float64(base)*100)
}

func (ds *dashboardService) GetStats(ctx context.Context) (*DashboardData, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }

  cacheKey := "dashboard:stats:" + rd.UserID.String()
  if ds.rdb != nil {
    if cached, cErr := ds.rdb.Get(ctx, cacheKey).Result(); cErr == nil {
      var data DashboardData
      if uErr := json.Unmarshal([]byte(cached), &data); uErr == nil {
        return &data, nil
      }
    }
  }

  startOfWeek, endOfWeek := weekWindow(time.Now())

  var (
    totalProducts    int64
    productsThisWeek int64
    totalPrompts     int64
    promptsThisWeek  int64
    recentProducts   []*types.Product
    recentActivity   []*types.ProductPrompt
  )

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var gErr error
    totalProducts, gErr = ds.productRepo.CountByUserID(gctx, nil, rd.UserID)
    return gErr
  })
  g.Go(func() error {
    var gErr error
    productsThisWeek, gErr = ds.productRepo.CountByUserIDBetween(gctx, nil, rd.UserID, startOfWeek, endOfWeek)
    return gErr
  })
  g.Go(func() error {
    var gErr error
    totalPrompts, gErr = ds.productPromptRepo.CountByOwner(gctx, nil, rd.UserID)
    return gErr
  })
  g.Go(func() error {
    var gErr error
    promptsThisWeek, gErr = ds.productPromptRepo.CountByOwnerBetween(gctx, nil, rd.UserID, startOfWeek, endOfWeek)
    return gErr
  })
  g.Go(func() error {
    var gErr error
    recentProducts, gErr = ds.productRepo.ListByUserID(gctx, nil, rd.UserID)
    return gErr
  })
  g.Go(func() error {
    var gErr error
    recentActivity, gErr = ds.productPromptRepo.ListRecentByOwner(gctx, nil, rd.UserID, 5)
    return gErr
  })
  if err := g.Wait(); err != nil {
    return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
  }

  if len(recentProducts) > 10 {
    recentProducts = recentProducts[:10]
  }

  avgPromptsPerProduct := "0"
  if totalProducts > 0 {
    avgPromptsPerProduct = fmt.Sprintf("%.1f", float64(totalPrompts)/float64(totalProducts))
  }

  data := &DashboardData{
    Stats: DashboardStats{
      Products: CountStat{
        Total:    totalProducts,
        ThisWeek: productsThisWeek,
        Growth:   growthPercent(totalProducts, productsThisWeek),
      },
      Prompts: CountStat{
        Total:    totalPrompts,
        ThisWeek: promptsThisWeek,
        Growth:   growthPercent(totalPrompts, promptsThisWeek),
      },
      Productivity: ProductivityStat{
        AveragePromptsPerProduct: avgPromptsPerProduct,
        WeeklyAverage:            fmt.Sprintf("%.1f", float64(promptsThisWeek)/7),
      },
    },
    RecentProducts: recentProducts,
    RecentActivity: recentActivity,
  }

  if ds.rdb != nil {
    if payload, mErr := json.Marshal(data); mErr == nil {
      if sErr := ds.rdb.Set(ctx, cacheKey, payload, ds.cacheTTL).Err(); sErr != nil {
        ds.log.Warn("Failed to cache dashboard stats", "error", sErr)
      }
    }
  }

  return data, nil
}

// GetUserProducts backs the wizard's product selector.
func (ds *dashboardService) GetUserProducts(ctx context.Context) ([]*types.Product, error) {
  rd, err := requesterFromContext(ctx)
  if err != nil {
    return nil, err
  }
  return ds.productRepo.ListByUserID(ctx, nil, rd.UserID)
}
