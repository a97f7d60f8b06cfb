package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/normalization"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/requestdata"
  "github.com/adgenius/adgenius-backend/internal/types"
  "github.com/adgenius/adgenius-backend/internal/utils"
)

type JWTClaims struct {
  Role string `json:"role"`
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, username, email, password, requestedRole string) (*types.User, string, error)
  LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetMe(ctx context.Context) (*types.User, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  jwtSecretKey  string
  accessTTL     time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

// RegisterUser creates an account and returns it with a fresh access
// token. Only an authenticated ADMIN may grant a role other than USER;
// the caller's identity, when present, travels in the request context.
func (as *authService) RegisterUser(ctx context.Context, username, email, password, requestedRole string) (*types.User, string, error) {
  username = normalization.TrimInputString(username)
  email = normalization.ParseInputString(email)

  if vErr := utils.ValidateRegistrationInput(username, email, password); vErr != nil {
    return nil, "", vErr
  }

  role := types.RoleUser
  if requestedRole != "" && requestedRole != types.RoleUser {
    if !types.ValidRole(requestedRole) {
      return nil, "", fmt.Errorf("unknown role %q", requestedRole)
    }
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.Role != types.RoleAdmin {
      return nil, "", fmt.Errorf("you do not have permission to assign this role")
    }
    role = requestedRole
  }

  exists, err := as.userRepo.EmailOrUsernameExists(ctx, nil, email, username)
  if err != nil {
    return nil, "", fmt.Errorf("failed to check existing users: %w", err)
  }
  if exists {
    return nil, "", fmt.Errorf("username or email already in use")
  }

  hashed, hErr := utils.HashPassword(password)
  if hErr != nil {
    return nil, "", hErr
  }

  user := &types.User{
    ID:       uuid.New(),
    Username: username,
    Email:    email,
    Password: hashed,
    Role:     role,
    IsActive: true,
  }
  if _, cErr := as.userRepo.Create(ctx, nil, []*types.User{user}); cErr != nil {
    return nil, "", fmt.Errorf("failed to create user: %w", cErr)
  }

  token, tErr := as.generateAccessToken(user)
  if tErr != nil {
    return nil, "", fmt.Errorf("failed to generate access token: %w", tErr)
  }
  return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
  email = normalization.ParseInputString(email)
  if vErr := utils.ValidateLoginInput(email, password); vErr != nil {
    return nil, "", vErr
  }

  users, uErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if uErr != nil {
    return nil, "", fmt.Errorf("error retrieving user by email: %w", uErr)
  }
  if len(users) == 0 {
    return nil, "", fmt.Errorf("invalid credentials")
  }
  user := users[0]
  if !user.IsActive {
    return nil, "", fmt.Errorf("account is deactivated")
  }
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return nil, "", fmt.Errorf("invalid credentials")
  }

  token, tErr := as.generateAccessToken(user)
  if tErr != nil {
    return nil, "", fmt.Errorf("failed to generate access token: %w", tErr)
  }
  return user, token, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    Role: user.Role,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", err)
  }

  users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if uErr != nil {
    return ctx, fmt.Errorf("failed to load user for token: %w", uErr)
  }
  if len(users) == 0 || !users[0].IsActive {
    return ctx, fmt.Errorf("token does not belong to an active user")
  }
  user := users[0]

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      user.ID,
    Username:    user.Username,
    Role:        user.Role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("no authenticated user in context")
  }
  users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("user not found")
  }
  return users[0], nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
