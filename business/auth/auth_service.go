package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dinesmart/domain"
	redisrepo "dinesmart/internal/repository/redis"
	"dinesmart/pkg/logger"
	"dinesmart/pkg/metrics"
	"dinesmart/pkg/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (domain.PasswordReset, error)
	Delete(ctx context.Context, id uint) error
}

type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data redisrepo.SessionData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, body string) error
}

const (
	resetTokenTTL    = 15 * time.Minute
	subjectReset     = "Reset your DineSmart password"
	bodyResetPattern = `Hi %v, use the token below to reset your password.<br/><br/>%v<br/>The token expires in %v minutes.`
)

var allowedRegistrationRoles = map[string]bool{
	domain.RoleCustomer: true,
	domain.RoleSeller:   true,
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type AuthService struct {
	userRepo  UserRepository
	resetRepo PasswordResetRepository
	tokenRepo TokenRepository
	notifRepo NotificationRepository
	devMode   bool
}

func NewAuthService(
	userRepo UserRepository,
	resetRepo PasswordResetRepository,
	tokenRepo TokenRepository,
	notifRepo NotificationRepository,
	environment string,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokenRepo: tokenRepo,
		notifRepo: notifRepo,
		devMode:   environment != "production",
	}
}

// Register creates an account. Admins are seeded out of band, so only
// customer and seller roles register here; sellers start PENDING.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (domain.User, error) {
	if !allowedRegistrationRoles[role] {
		return domain.User{}, fmt.Errorf("%w: role must be CUSTOMER or SELLER", domain.ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID > 0 {
		return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, err
	}

	user := domain.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     role,
		Status:   domain.RegistrationStatus(role),
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// Login checks credentials and account status, mints a JWT and stores the
// session in redis. Only APPROVED accounts get past the credential check.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		metrics.AuthFailuresTotal.Inc()
		return LoginResult{}, domain.ErrUnauthenticated
	}

	if !utils.CheckPassword(password, user.Password) {
		metrics.AuthFailuresTotal.Inc()
		return LoginResult{}, domain.ErrUnauthenticated
	}

	if user.Status != domain.StatusApproved {
		if user.Status == domain.StatusPending {
			return LoginResult{}, fmt.Errorf("%w: account pending admin approval", domain.ErrForbidden)
		}
		return LoginResult{}, fmt.Errorf("%w: account suspended", domain.ErrForbidden)
	}

	userID := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userID, user.Role, user.Email)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return LoginResult{}, err
	}

	now := time.Now()
	ttl := utils.TokenTTL()
	err = s.tokenRepo.StoreToken(ctx, userID, token, redisrepo.SessionData{
		UserID:    userID,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, ttl)
	if err != nil {
		logger.Error("Failed to store session", err)
		return LoginResult{}, err
	}

	user.Password = ""
	return LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint, token string) error {
	return s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token)
}

// ValidateTokenFromRedis is the middleware hook: it maps a bearer token back
// to the user id the session was issued for.
func (s *AuthService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

// RequestPasswordReset responds the same whether or not the account exists.
// When it does, a single-use token is generated, its hash persisted, and the
// raw token mailed out. In dev mode the raw token is also returned so the
// flow can be exercised without a mail sandbox.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (devToken string, err error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	raw, hash, err := utils.NewResetToken()
	if err != nil {
		return "", err
	}

	reset := domain.PasswordReset{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, &reset); err != nil {
		return "", err
	}

	// Mail failure must not fail the request; the user can simply retry.
	body := fmt.Sprintf(bodyResetPattern, user.Name, raw, int(resetTokenTTL.Minutes()))
	if err := s.notifRepo.SendEmail(user.Name, user.Email, subjectReset, body); err != nil {
		logger.Warn("Failed to send reset email", err)
	}

	if s.devMode {
		return raw, nil
	}
	return "", nil
}

// ResetPassword consumes a reset token: hash lookup, expiry check, password
// update, then the token row is deleted so it can never be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	reset, err := s.resetRepo.FindValidByHash(ctx, utils.HashToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired token", domain.ErrInvalidInput)
		}
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, passwordHash); err != nil {
		return err
	}

	if err := s.resetRepo.Delete(ctx, reset.ID); err != nil {
		logger.Warn("Failed to delete consumed reset token", err)
	}

	return nil
}
