package services

import (
	"database/sql"
	"errors"
	"fmt"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
	"workforce_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrTokenGeneration    = errors.New("failed to generate token")
	ErrInvalidRole        = errors.New("role must be STAFF or ADMIN")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Role       string  `json:"role"` // STAFF (default) or ADMIN
	HourlyRate float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	RefreshTokens(refreshToken string) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB) AuthService {
	return &authService{
		authRepo: authRepo,
		db:       db,
	}
}

// RegisterUser handles the business logic for user registration.
func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	if req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrStaffDataValidation)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		HourlyRate: req.HourlyRate,
	}

	userID, err := s.authRepo.CreateUser(s.db, user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.authRepo.FindUserByID(userID)
}

// LoginUser verifies credentials and issues access and refresh tokens.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, hashedPassword, err := s.authRepo.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(user)
}

// RefreshTokens exchanges a valid refresh token for a fresh token pair.
func (s *authService) RefreshTokens(refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	user, err := s.authRepo.FindUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user for refresh: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserProfile returns the user for the authenticated session.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}
