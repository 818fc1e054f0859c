package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"time"
	"unicode"

	"dayflow/internal/config"
	"dayflow/internal/dto"
	"dayflow/internal/model"
	"dayflow/internal/repository"
	"dayflow/internal/worker"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserResponse, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	// Login returns the user on success; any failure is ErrInvalidCredentials —
	// callers never learn which check failed.
	Login(ctx context.Context, req dto.LoginRequest) (*model.User, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type authService struct {
	repo       repository.UserRepository
	cfg        *config.Config
	dispatcher *worker.Dispatcher
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config, dispatcher *worker.Dispatcher) AuthService {
	return &authService{repo: repo, cfg: cfg, dispatcher: dispatcher}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserResponse, error) {
	if violations := validateSignup(req); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	exists, err := s.repo.ExistsByCodeOrEmail(ctx, req.EmployeeCode, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	token, err := newVerificationToken()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().Add(24 * time.Hour)

	role := model.Role(req.Role)
	if req.Role == "" {
		role = model.RoleEmployee
	}

	user := &model.User{
		EmployeeCode:      req.EmployeeCode,
		Email:             req.Email,
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
		EmailVerified:     false,
		VerificationToken: &token,
		TokenExpiry:       &expiry,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Verification mail goes out asynchronously — a slow or broken SMTP
	// server must not fail the signup.
	if s.dispatcher != nil {
		link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.BaseURL, token)
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			Kind:    worker.EmailKindVerification,
			ToEmail: user.Email,
			Link:    link,
		})
	}

	return userToResponse(user), nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	user, err := s.repo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if user.EmailVerified {
		return "Email already verified. You can login now.", nil
	}
	if user.TokenExpiry == nil || user.TokenExpiry.Before(time.Now()) {
		return "", ErrTokenExpired
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.TokenExpiry = nil
	if err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}
	return "Email verified successfully! You can now login.", nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*model.User, error) {
	user, err := s.repo.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active || !user.EmailVerified {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *authService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.SetActive(ctx, id, active)
}

// validateSignup collects every violated rule — the caller sees the full list.
func validateSignup(req dto.SignupRequest) []string {
	var violations []string

	if req.EmployeeCode == "" {
		violations = append(violations, "Employee ID is required.")
	}
	if req.Email == "" {
		violations = append(violations, "Valid email is required.")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		violations = append(violations, "Valid email is required.")
	}

	violations = append(violations, validatePassword(req.Password)...)

	if req.Password != req.ConfirmPassword {
		violations = append(violations, "Passwords do not match.")
	}
	if req.Role != "" && !model.ValidRole(model.Role(req.Role)) {
		violations = append(violations, "Invalid role.")
	}
	return violations
}

func validatePassword(pw string) []string {
	if pw == "" {
		return []string{"Password is required."}
	}

	var violations []string
	if len(pw) < 8 {
		violations = append(violations, "Password must be at least 8 characters long.")
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper {
		violations = append(violations, "Password must contain at least one uppercase letter.")
	}
	if !lower {
		violations = append(violations, "Password must contain at least one lowercase letter.")
	}
	if !digit {
		violations = append(violations, "Password must contain at least one number.")
	}
	if !special {
		violations = append(violations, "Password must contain at least one special character.")
	}
	return violations
}

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func userToResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID.String(),
		EmployeeCode:  u.EmployeeCode,
		Email:         u.Email,
		Role:          string(u.Role),
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
	}
}
