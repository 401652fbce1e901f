package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go_trial/foodhub/models"
	"go_trial/foodhub/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SignupInput struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	FullName string `json:"fullName" validate:"max=100"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldpassword" validate:"required"`
	NewPassword string `json:"newpassword" validate:"required,strongpassword"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,strongpassword"`
}

// Session is the token pair handed out at signup and login.
type Session struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type ResetRequest struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"tokenExpiresAt"`
}

type AuthService struct {
	users     UserRepository
	refresh   RefreshTokenRepository
	tokens    TokenIssuer
	notifier  Notifier
	resetBase string
	resetTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users UserRepository, refresh RefreshTokenRepository, tokens TokenIssuer, notifier Notifier, resetBase string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		refresh:   refresh,
		tokens:    tokens,
		notifier:  notifier,
		resetBase: strings.TrimRight(resetBase, "/"),
		resetTTL:  resetTTL,
		now:       time.Now,
	}
}

// StrongPassword requires at least 8 characters mixing lower, upper, digit and symbol.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, *Session, error) {
	if !StrongPassword(in.Password) {
		return nil, nil, fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and symbol", ErrValidation)
	}
	if err := s.ensureFree(ctx, in.Username, in.Email); err != nil {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	user := &models.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         models.RoleUser,
		Status:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, nil, fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return nil, nil, err
	}

	session, err := s.session(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	if !user.Status {
		return nil, fmt.Errorf("%w: account is disabled", ErrForbidden)
	}
	return s.session(ctx, user.ID)
}

// Refresh trades a stored refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	subject, err := s.tokens.Verify(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	userID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	known, err := s.refresh.Exists(ctx, userID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrUnauthorized)
	}

	access, expires, err := s.tokens.Issue(subject, utils.AccessToken)
	if err != nil {
		return nil, err
	}
	return &Session{Token: access, RefreshToken: refreshToken, ExpiresAt: expires}, nil
}

// Logout revokes every refresh token of the user.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	return s.refresh.DeleteForUser(ctx, userID)
}

// Authenticate resolves an access token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	subject, err := s.tokens.Verify(accessToken, utils.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	userID, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", ErrUnauthorized)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.Status {
		return nil, fmt.Errorf("%w: account is disabled", ErrForbidden)
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, in ChangePasswordInput) error {
	if !utils.CheckPassword(user.PasswordHash, in.OldPassword) {
		return fmt.Errorf("%w: old password is incorrect", ErrValidation)
	}
	if !StrongPassword(in.NewPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and symbol", ErrValidation)
	}
	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, hash); err != nil {
		return notFound(err, "user "+user.ID.Hex())
	}
	if err := s.refresh.DeleteForUser(ctx, user.ID); err != nil {
		return err
	}

	bestEffort(ctx, "password_changed_email", logrus.Fields{"user": user.ID.Hex()}, func(ctx context.Context) error {
		return s.notifier.PasswordChanged(ctx, user)
	})
	return nil
}

// ForgotPassword stores a fresh single-use reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, in ForgotPasswordInput) (*ResetRequest, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, notFound(err, "email "+in.Email)
	}
	token, err := utils.NewResetToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return nil, err
	}
	user.ResetToken, user.ResetTokenExpiry = token, &expires

	link := s.resetBase + "/" + token
	bestEffort(ctx, "password_reset_email", logrus.Fields{"user": user.ID.Hex()}, func(ctx context.Context) error {
		return s.notifier.PasswordReset(ctx, user, link)
	})
	return &ResetRequest{Email: user.Email, ExpiresAt: expires}, nil
}

// ResetPassword consumes the token; the repository clears it with the new hash.
func (s *AuthService) ResetPassword(ctx context.Context, token string, in ResetPasswordInput) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: reset token is required", ErrValidation)
	}
	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: reset token is invalid", ErrValidation)
		}
		return nil, err
	}
	if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(s.now()) {
		return nil, fmt.Errorf("%w: reset token has expired, request a new one", ErrValidation)
	}
	if !StrongPassword(in.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters with upper, lower, digit and symbol", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetPassword(ctx, user.ID, hash); err != nil {
		return nil, notFound(err, "user "+user.ID.Hex())
	}
	// Sessions issued under the old password must not outlive it.
	if err := s.refresh.DeleteForUser(ctx, user.ID); err != nil {
		return nil, err
	}

	bestEffort(ctx, "password_changed_email", logrus.Fields{"user": user.ID.Hex()}, func(ctx context.Context) error {
		return s.notifier.PasswordChanged(ctx, user)
	})
	return user, nil
}

func (s *AuthService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: username %s is taken", ErrConflict, username)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if _, err := s.users.GetByEmail(ctx, strings.ToLower(email)); err == nil {
		return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

func (s *AuthService) session(ctx context.Context, userID primitive.ObjectID) (*Session, error) {
	access, expires, err := s.tokens.Issue(userID.Hex(), utils.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, refreshExpires, err := s.tokens.Issue(userID.Hex(), utils.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Save(ctx, userID, refresh, refreshExpires); err != nil {
		return nil, err
	}
	return &Session{Token: access, RefreshToken: refresh, ExpiresAt: expires}, nil
}
