package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
  "github.com/adgenius/adgenius-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "adgenius", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  serviceLog.Info("Connecting to Postgres...")
  gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  if err := gormDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
  }

  return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Product{},
    &types.Prompt{},
    &types.ProductPrompt{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  stmts := []string{
    `ALTER TABLE "product" DROP CONSTRAINT IF EXISTS "fk_product_user_id";
     ALTER TABLE "product" ADD CONSTRAINT "fk_product_user_id"
     FOREIGN KEY ("user_id") REFERENCES "user"("id") ON DELETE CASCADE`,
    `ALTER TABLE "product_prompt" DROP CONSTRAINT IF EXISTS "fk_product_prompt_product_id";
     ALTER TABLE "product_prompt" ADD CONSTRAINT "fk_product_prompt_product_id"
     FOREIGN KEY ("product_id") REFERENCES "product"("id") ON DELETE CASCADE`,
    `ALTER TABLE "product_prompt" DROP CONSTRAINT IF EXISTS "fk_product_prompt_prompt_id";
     ALTER TABLE "product_prompt" ADD CONSTRAINT "fk_product_prompt_prompt_id"
     FOREIGN KEY ("prompt_id") REFERENCES "prompt"("id") ON DELETE CASCADE`,
  }
  for _, stmt := range stmts {
    if err := s.db.Exec(stmt).Error; err != nil {
      return fmt.Errorf("failed to configure foreign keys: %w", err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
