package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/muskan-fatima97/ClassyShop/internal/entity"
	"github.com/muskan-fatima97/ClassyShop/internal/mailer"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/auth"
	"github.com/muskan-fatima97/ClassyShop/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthUserRepository is the slice of the user repository the credential
// flows need.
type AuthUserRepository interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	SaveResetToken(ctx context.Context, userID primitive.ObjectID, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, hashedPassword string) error
}

type AuthUsecase struct {
	users       AuthUserRepository
	txn         repository.TxnRunner
	hasher      auth.PasswordHasher
	tokens      *auth.TokenManager
	mail        mailer.Mailer
	frontendURL string
	tokenTTL    time.Duration
	resetTTL    time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

type AuthConfig struct {
	FrontendURL   string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
}

func NewAuthUsecase(
	users AuthUserRepository,
	txn repository.TxnRunner,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	mail mailer.Mailer,
	cfg AuthConfig,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:       users,
		txn:         txn,
		hasher:      hasher,
		tokens:      tokens,
		mail:        mail,
		frontendURL: cfg.FrontendURL,
		tokenTTL:    cfg.TokenTTL,
		resetTTL:    cfg.ResetTokenTTL,
		now:         time.Now,
		logger:      logger.Named("AuthUsecase"),
	}
}

// WithClock substitutes the time source, for reset-token expiry tests.
func (u *AuthUsecase) WithClock(now func() time.Time) *AuthUsecase {
	u.now = now
	return u
}

type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Gender   string
	Password string
}

// Signup validates the payload, then runs the email-collision check and
// the insert inside one transaction. The unique index on email is the
// backstop for two concurrent signups racing past the check: at most
// one commits, the other surfaces ErrDuplicateEmail.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*entity.User, error) {
	if errs := validateSignup(input); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	hashedPassword, err := u.hasher.Hash(input.Password)
	if err != nil {
		u.logger.Error("Failed to hash password during signup", zap.String("email", input.Email), zap.Error(err))
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Phone:    input.Phone,
		Gender:   input.Gender,
		Password: hashedPassword,
		Role:     entity.RoleUser,
	}

	err = u.txn.Run(ctx, func(txCtx context.Context) error {
		_, err := u.users.GetByEmail(txCtx, user.Email)
		if err == nil {
			return repository.ErrDuplicateEmail
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		_, err = u.users.Create(txCtx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("User registered", zap.String("email", user.Email))
	return user, nil
}

// Login returns the signed session token and the user record. Handlers
// project the user down to email and role before responding.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if errs := validateLogin(email, password); len(errs) > 0 {
		return "", nil, &ValidationError{Errors: errs}
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrNotRegistered
		}
		return "", nil, err
	}

	if err := u.hasher.Compare(user.Password, password); err != nil {
		return "", nil, ErrInvalidPassword
	}

	token, err := u.tokens.Generate(user.ID.Hex(), user.Role, u.tokenTTL)
	if err != nil {
		u.logger.Error("Failed to sign session token", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	u.logger.Info("Logged in", zap.String("role", user.Role), zap.String("email", user.Email))
	return token, user, nil
}

// ForgetPassword issues a short-lived reset token, persists it on the
// user record and mails the reset link.
func (u *AuthUsecase) ForgetPassword(ctx context.Context, email string) error {
	if errs := validateForgetPassword(email); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	resetToken, err := u.tokens.Generate(user.ID.Hex(), "", u.resetTTL)
	if err != nil {
		u.logger.Error("Failed to sign reset token", zap.String("email", email), zap.Error(err))
		return err
	}

	expiry := u.now().Add(u.resetTTL)
	if err := u.users.SaveResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", u.frontendURL, url.QueryEscape(resetToken))
	if err := u.mail.SendPasswordReset(user.Email, resetLink); err != nil {
		return err
	}

	u.logger.Info("Password reset link sent", zap.String("email", user.Email))
	return nil
}

// ResetPassword completes the flow: the stored token must match and its
// expiry must still be in the future. The password write clears the
// token, so a reset link is single-use.
func (u *AuthUsecase) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if errs := validateResetPassword(password, confirmPassword); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	cleanToken := strings.TrimSpace(token)
	user, err := u.users.GetByResetToken(ctx, cleanToken, u.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashedPassword, err := u.hasher.Hash(password)
	if err != nil {
		u.logger.Error("Failed to hash new password", zap.String("userID", user.ID.Hex()), zap.Error(err))
		return err
	}

	if err := u.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	u.logger.Info("Password reset completed", zap.String("userID", user.ID.Hex()))
	return nil
}
