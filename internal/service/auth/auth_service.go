package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/travelbook/config"
	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/email"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified.
type Principal struct {
	ID    int64
	Email string
}

// Session is the result of a successful authentication: a signed token plus
// the user it belongs to, with credentials stripped.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type GoogleLoginInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, emailAddr, password string) (*Session, error)
	GoogleLogin(ctx context.Context, input GoogleLoginInput) (*Session, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error
	ParseToken(token string) (*Principal, error)
	Authorize(p *Principal, ownerID int64) error
	IsAdmin(p *Principal) bool
}

type AuthService struct {
	users      repository.UserRepository
	sender     email.Sender
	secret     []byte
	adminEmail string
	tokenTTL   time.Duration
	resetTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, sender email.Sender, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:      users,
		sender:     sender,
		secret:     []byte(cfg.JWTSecret),
		adminEmail: cfg.AdminEmail,
		tokenTTL:   cfg.TokenTTL(),
		resetTTL:   cfg.ResetTTL(),
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" || input.Phone == "" {
		return nil, fmt.Errorf("%w: email, password, name, and phone are required", domain.ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:    input.Email,
		Password: string(hash),
		Name:     input.Name,
		Phone:    input.Phone,
	})
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*Session, error) {
	if emailAddr == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalid)
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		// A missing account reads the same as a wrong password.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if user.Password == "" {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return s.newSession(user)
}

// GoogleLogin upserts the user by email. Federated accounts carry no password
// hash, so password login stays closed for them.
func (s *AuthService) GoogleLogin(ctx context.Context, input GoogleLoginInput) (*Session, error) {
	if input.Email == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: email and name are required", domain.ErrInvalid)
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.Create(ctx, domain.User{
			Email: input.Email,
			Name:  input.Name,
			Phone: input.Phone,
		})
	}
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

// ForgotPassword issues a one-time reset token: only its hash is stored, the
// token itself goes out by email. A failed delivery clears the token and
// fails the request instead of leaving an unreachable token behind.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalid)
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(s.resetTTL).UnixMilli()
	if err := s.users.SetResetToken(ctx, user.ID, hashToken(token), expiry); err != nil {
		return err
	}

	body := fmt.Sprintf("Use this code to reset your travelbook password: %s\nIt expires in %d minutes.",
		token, int(s.resetTTL.Minutes()))
	if err := s.sender.Send(ctx, user.Email, "Password reset", body); err != nil {
		_ = s.users.SetResetToken(ctx, user.ID, "", 0)
		return fmt.Errorf("deliver reset email: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error {
	if emailAddr == "" || token == "" || newPassword == "" {
		return fmt.Errorf("%w: email, token, and newPassword are required", domain.ErrInvalid)
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.ResetTokenHash == "" {
		return fmt.Errorf("%w: no reset was requested", domain.ErrInvalid)
	}
	if user.ResetTokenExpiry < time.Now().UnixMilli() {
		return fmt.Errorf("%w: reset token expired", domain.ErrInvalid)
	}
	if hashToken(token) != user.ResetTokenHash {
		return fmt.Errorf("%w: reset token mismatch", domain.ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	// SetPassword also invalidates the token.
	return s.users.SetPassword(ctx, user.ID, string(hash))
}

func (s *AuthService) ParseToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	id, ok := claims["id"].(float64)
	emailClaim, ok2 := claims["email"].(string)
	if !ok || !ok2 {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	return &Principal{ID: int64(id), Email: emailClaim}, nil
}

// Authorize lets a principal act on a user-scoped resource when they own it,
// or when they are the configured administrator.
func (s *AuthService) Authorize(p *Principal, ownerID int64) error {
	if p == nil {
		return fmt.Errorf("%w: missing credentials", domain.ErrUnauthorized)
	}
	if p.ID == ownerID || p.Email == s.adminEmail {
		return nil
	}
	return fmt.Errorf("%w: not the resource owner", domain.ErrForbidden)
}

// IsAdmin reports whether the principal is the configured administrator.
func (s *AuthService) IsAdmin(p *Principal) bool {
	return p != nil && p.Email == s.adminEmail
}

func (s *AuthService) newSession(user *domain.User) (*Session, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	sanitized := *user
	sanitized.Password = ""
	sanitized.ResetTokenHash = ""
	sanitized.ResetTokenExpiry = 0
	return &Session{Token: signed, User: sanitized}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

var _ AuthUseCase = (*AuthService)(nil)
