package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

// bcryptCost matches the work factor the original service used.
const bcryptCost = 12

// AuthService manages the account lifecycle: registration, credential checks,
// token pairs, password changes and the enabled flag.
type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		db:     db,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account with role USER and returns a fresh token pair.
// Username and email uniqueness are checked before the insert; the check and
// the insert are separate statements, so concurrent duplicate registrations
// can still collide at the unique index.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		Enabled:      true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return s.issueTokenPair(&user)
}

// Login authenticates by username or email. A missing user, a wrong password
// and a disabled account all collapse into ErrInvalidCredentials so the
// response never reveals which factor failed. A successful login stamps
// LastLoginAt.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*types.AuthResponse, error) {
	user, err := s.findByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}

	user.UpdateLastLogin()
	if err := s.db.WithContext(ctx).Model(user).Update("last_login_at", user.LastLoginAt).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return s.issueTokenPair(user)
}

// Refresh exchanges a valid refresh token for a brand-new token pair. The old
// refresh token is not revoked and stays usable until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.AuthResponse, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefresh() {
		return nil, ErrWrongTokenType
	}

	user, err := s.findByUsernameOrEmail(ctx, claims.Username())
	if err != nil {
		return nil, err
	}
	return s.issueTokenPair(user)
}

// ChangePassword replaces the stored hash after verifying the current
// password against it.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&user).Update("password_hash", string(hash)).Error
}

// ValidateToken reports whether the token verifies and its subject still
// resolves to an enabled account.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) bool {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return false
	}
	user, err := s.findByUsernameOrEmail(ctx, claims.Username())
	if err != nil {
		return false
	}
	return user.Enabled
}

// ResolveAccessToken verifies an access token and resolves it to an enabled
// user. Refresh tokens are rejected here: they only mint new access tokens.
func (s *AuthService) ResolveAccessToken(ctx context.Context, tokenString string) (*models.User, *types.TokenClaims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, nil, err
	}
	if claims.TokenType != types.TokenTypeAccess {
		return nil, nil, ErrWrongTokenType
	}
	user, err := s.findByUsernameOrEmail(ctx, claims.Username())
	if err != nil {
		return nil, nil, err
	}
	if !user.Enabled {
		return nil, nil, ErrUserDisabled
	}
	return user, claims, nil
}

// UserInfoFromToken returns the redacted user projection for a valid token.
func (s *AuthService) UserInfoFromToken(ctx context.Context, tokenString string) (*types.UserInfo, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.findByUsernameOrEmail(ctx, claims.Username())
	if err != nil {
		return nil, err
	}
	info := types.NewUserInfo(user)
	return &info, nil
}

// IsUsernameAvailable reports whether no account holds the username.
func (s *AuthService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count == 0, err
}

// IsEmailAvailable reports whether no account holds the email.
func (s *AuthService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count == 0, err
}

// EnableUser sets the enabled flag. Enabling an already-enabled account is a no-op.
func (s *AuthService) EnableUser(ctx context.Context, userID uuid.UUID) error {
	return s.setEnabled(ctx, userID, true)
}

// DisableUser clears the enabled flag. Outstanding tokens keep verifying but
// stop resolving, so a disabled account is locked out immediately.
func (s *AuthService) DisableUser(ctx context.Context, userID uuid.UUID) error {
	return s.setEnabled(ctx, userID, false)
}

func (s *AuthService) setEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("enabled", enabled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *AuthService) findByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueTokenPair(user *models.User) (*types.AuthResponse, error) {
	accessToken, err := s.tokens.Issue(user.Username, user.ID, user.Role, types.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user.Username, user.ID, user.Role, types.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &types.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.Expiry().Seconds()),
		User:         types.NewUserInfo(user),
	}, nil
}
