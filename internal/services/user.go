package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/normalization"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/requestdata"
  "github.com/adgenius/adgenius-backend/internal/types"
  "github.com/adgenius/adgenius-backend/internal/utils"
)

// UserUpdate carries the admin-screen edits; nil fields are untouched.
type UserUpdate struct {
  Username  *string
  Email     *string
  Password  *string
  Role      *string
  IsActive  *bool
}

type UserService interface {
  ListUsers(ctx context.Context) ([]*types.User, error)
  GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
  CreateUser(ctx context.Context, username, email, password, role string) (*types.User, error)
  UpdateUser(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error)
  DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
  return us.userRepo.List(ctx, nil)
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, &NotFoundError{Message: "user not found"}
  }
  return users[0], nil
}

// CreateUser is the admin-screen variant of registration: it creates the
// account without issuing a token and accepts any valid role, since the
// route is already gated to ADMIN.
func (us *userService) CreateUser(ctx context.Context, username, email, password, role string) (*types.User, error) {
  username = normalization.TrimInputString(username)
  email = normalization.ParseInputString(email)

  if vErr := utils.ValidateRegistrationInput(username, email, password); vErr != nil {
    return nil, &ValidationError{Message: vErr.Error()}
  }
  if role == "" {
    role = types.RoleUser
  }
  if !types.ValidRole(role) {
    return nil, &ValidationError{Message: fmt.Sprintf("unknown role %q", role)}
  }

  exists, err := us.userRepo.EmailOrUsernameExists(ctx, nil, email, username)
  if err != nil {
    return nil, fmt.Errorf("failed to check existing users: %w", err)
  }
  if exists {
    return nil, &ValidationError{Message: "username or email already in use"}
  }

  hashed, hErr := utils.HashPassword(password)
  if hErr != nil {
    return nil, hErr
  }

  user := &types.User{
    ID:       uuid.New(),
    Username: username,
    Email:    email,
    Password: hashed,
    Role:     role,
    IsActive: true,
  }
  if _, cErr := us.userRepo.Create(ctx, nil, []*types.User{user}); cErr != nil {
    return nil, fmt.Errorf("failed to create user: %w", cErr)
  }
  return user, nil
}

func (us *userService) UpdateUser(ctx context.Context, userID uuid.UUID, update UserUpdate) (*types.User, error) {
  if _, err := us.GetUser(ctx, userID); err != nil {
    return nil, err
  }

  updates := map[string]interface{}{}
  if update.Username != nil {
    username := normalization.TrimInputString(*update.Username)
    if username == "" {
      return nil, &ValidationError{Message: "username cannot be empty"}
    }
    updates["username"] = username
  }
  if update.Email != nil {
    updates["email"] = normalization.ParseInputString(*update.Email)
  }
  if update.Password != nil {
    hashed, hErr := utils.HashPassword(*update.Password)
    if hErr != nil {
      return nil, hErr
    }
    updates["password"] = hashed
  }
  if update.Role != nil {
    if !types.ValidRole(*update.Role) {
      return nil, &ValidationError{Message: fmt.Sprintf("unknown role %q", *update.Role)}
    }
    updates["role"] = *update.Role
  }
  if update.IsActive != nil {
    updates["is_active"] = *update.IsActive
  }
  if len(updates) == 0 {
    return us.GetUser(ctx, userID)
  }

  if err := us.userRepo.Update(ctx, nil, userID, updates); err != nil {
    return nil, fmt.Errorf("failed to update user: %w", err)
  }
  return us.GetUser(ctx, userID)
}

func (us *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
  rd := requestdata.GetRequestData(ctx)
  if rd != nil && rd.UserID == userID {
    return &ValidationError{Message: "you cannot delete your own account"}
  }
  if _, err := us.GetUser(ctx, userID); err != nil {
    return err
  }
  if err := us.userRepo.Delete(ctx, nil, userID); err != nil {
    return fmt.Errorf("failed to delete user: %w", err)
  }
  return nil
}
