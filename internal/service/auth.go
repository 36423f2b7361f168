package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AuthConfig configures token signing and password hashing
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService handles accounts, credentials and tokens
type AuthService struct {
	users     *store.UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	cost      int
	log       *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users *store.UserStore, cfg AuthConfig, log *zap.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
		cost:      cost,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account. A second registration for the same email fails with
// errs.ErrEmailRegistered and leaves the existing account untouched.
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (model.User, error) {
	email := model.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if err := validateRegistration(email, req.Password, username); err != nil {
		return model.User{}, err
	}

	// Hash outside the store lock, bcrypt is slow on purpose
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	var user model.User
	err = s.users.Mutate(ctx, func(accounts store.Accounts) error {
		if _, exists := accounts[email]; exists {
			return errs.ErrEmailRegistered
		}
		user = model.User{
			ID:           s.users.NewID(accounts),
			Email:        email,
			Username:     username,
			Favorites:    model.FavoriteSet{},
			ProfileImage: store.DefaultAvatar,
			Bio:          store.DefaultBio,
			CreatedAt:    s.now(),
		}
		accounts[email] = model.Account{PasswordHash: string(hashedPassword), User: user}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and returns the account's user
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, error) {
	acc, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return model.User{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	// Compare password
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return acc.User, nil
}

// GetUserByID returns the user with id or errs.ErrNotFound
func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.User, error) {
	acc, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	return acc.User, nil
}

// mutateUser applies fn to the account of userID and persists it
func (s *AuthService) mutateUser(ctx context.Context, userID string, fn func(*model.User) error) (model.User, error) {
	var updated model.User
	err := s.users.Mutate(ctx, func(accounts store.Accounts) error {
		for email, acc := range accounts {
			if acc.User.ID != userID {
				continue
			}
			if err := fn(&acc.User); err != nil {
				return err
			}
			accounts[email] = acc
			updated = acc.User
			return nil
		}
		return errs.ErrNotFound
	})
	return updated, err
}

// UpdateProfile changes the username, bio or avatar of a user. Nil fields are kept.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req types.UpdateProfileRequest) (model.User, error) {
	v := errs.NewValidationError()
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		v.Add("username", "Username is required")
	}
	if req.ProfileImage != nil && *req.ProfileImage != "" && !isWebURL(*req.ProfileImage) {
		v.Add("profile_image", "Profile image must be an http or https URL")
	}
	if err := v.OrNil(); err != nil {
		return model.User{}, err
	}

	return s.mutateUser(ctx, userID, func(u *model.User) error {
		if req.Username != nil {
			u.Username = strings.TrimSpace(*req.Username)
		}
		if req.Bio != nil {
			u.Bio = strings.TrimSpace(*req.Bio)
		}
		if req.ProfileImage != nil {
			u.ProfileImage = strings.TrimSpace(*req.ProfileImage)
		}
		return nil
	})
}

// ToggleFavorite flips recipeID in the user's favorites and persists the result.
// The recipe is not looked up, so favorites of deleted recipes can still be removed.
func (s *AuthService) ToggleFavorite(ctx context.Context, userID, recipeID string) (model.User, error) {
	return s.mutateUser(ctx, userID, func(u *model.User) error {
		*u = ToggleFavorite(*u, recipeID)
		return nil
	})
}

// GenerateToken issues a signed token for user
func (s *AuthService) GenerateToken(user model.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a token issued by GenerateToken
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ResetUsers restores the seeded accounts
func (s *AuthService) ResetUsers(ctx context.Context) error {
	return s.users.Reset(ctx)
}
