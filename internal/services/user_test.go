package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adgenius/adgenius-backend/internal/repos"
	"github.com/adgenius/adgenius-backend/internal/types"
)

func newUserServiceFixture(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}

	log := testLogger()
	return NewUserService(db, log, repos.NewUserRepo(db, log)), db
}

func TestCreateUser_PersistsWithHashedPassword(t *testing.T) {
	svc, db := newUserServiceFixture(t)

	user, err := svc.CreateUser(context.Background(), "newuser", "NewUser@Example.com", "s3curePass!", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != types.RoleUser {
		t.Fatalf("expected default role USER, got %q", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected account active")
	}
	if user.Email != "newuser@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	var row types.User
	if dberr := db.First(&row, "id = ?", user.ID).Error; dberr != nil {
		t.Fatalf("loading row: %v", dberr)
	}
	if row.Password == "s3curePass!" {
		t.Fatalf("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte("s3curePass!")) != nil {
		t.Fatalf("stored hash does not match the password")
	}
}

func TestCreateUser_AcceptsExplicitRole(t *testing.T) {
	svc, _ := newUserServiceFixture(t)

	user, err := svc.CreateUser(context.Background(), "mgr", "mgr@example.com", "s3curePass!", types.RoleManager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != types.RoleManager {
		t.Fatalf("expected MANAGER, got %q", user.Role)
	}
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := newUserServiceFixture(t)

	_, err := svc.CreateUser(context.Background(), "x", "x@example.com", "s3curePass!", "OVERLORD")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceFixture(t)

	if _, err := svc.CreateUser(context.Background(), "first", "dup@example.com", "s3curePass!", ""); err != nil {
		t.Fatalf("seeding first user: %v", err)
	}
	_, err := svc.CreateUser(context.Background(), "second", "dup@example.com", "s3curePass!", "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for duplicate email, got %v", err)
	}
}
