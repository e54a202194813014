package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrStaffDataValidation = errors.New("staff data validation error")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
)

// --- StaffMember DTOs ---
type CreateStaffMemberRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
}

type UpdateStaffMemberRequest struct {
	Name       *string  `json:"name"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaffMember(req CreateStaffMemberRequest) (*models.User, error)
	GetStaffMemberByID(staffID int64) (*models.User, error)
	GetStaffMembers(activeOnly bool) ([]models.User, error)
	UpdateStaffMember(staffID int64, req UpdateStaffMemberRequest) (*models.User, error)
	DeactivateStaffMember(staffID int64) error
	ResetStaffPassword(staffID int64, newPassword string) error
}

// --- staffService Implementation ---
type staffService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(authRepo repositories.AuthRepository, db *sql.DB) StaffService {
	return &staffService{
		authRepo: authRepo,
		db:       db,
	}
}

// CreateStaffMember registers a new STAFF user with a pay rate. Admins are
// created through registration, not here.
func (s *staffService) CreateStaffMember(req CreateStaffMemberRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrStaffDataValidation)
	}
	if req.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrStaffDataValidation)
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Role:       models.RoleStaff,
		HourlyRate: req.HourlyRate,
	}

	staffID, err := s.authRepo.CreateUser(s.db, staff, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, req.Email)
		}
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return s.authRepo.FindUserByID(staffID)
}

func (s *staffService) GetStaffMemberByID(staffID int64) (*models.User, error) {
	staff, err := s.authRepo.FindUserByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member by ID: %w", err)
	}
	if staff.Role != models.RoleStaff {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (s *staffService) GetStaffMembers(activeOnly bool) ([]models.User, error) {
	staff, err := s.authRepo.ListStaff(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff members: %w", err)
	}
	return staff, nil
}

// UpdateStaffMember applies partial updates to name, hourly rate and the
// active flag. Rate edits take effect for all future aggregation under the
// CURRENT pay-rate policy, including re-run historical reports.
func (s *staffService) UpdateStaffMember(staffID int64, req UpdateStaffMemberRequest) (*models.User, error) {
	staff, err := s.GetStaffMemberByID(staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrStaffDataValidation)
		}
		staff.Name = strings.TrimSpace(*req.Name)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, fmt.Errorf("%w: hourly rate cannot be negative", ErrStaffDataValidation)
		}
		staff.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := s.authRepo.UpdateUser(s.db, staff); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return s.authRepo.FindUserByID(staff.ID)
}

// DeactivateStaffMember flips the active flag off instead of deleting the
// row, preserving shift and timesheet history.
func (s *staffService) DeactivateStaffMember(staffID int64) error {
	if _, err := s.GetStaffMemberByID(staffID); err != nil {
		return err
	}
	if err := s.authRepo.SetActive(s.db, staffID, false); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to deactivate staff member: %w", err)
	}
	return nil
}

// ResetStaffPassword sets a new password for a staff member, an
// admin-initiated action.
func (s *staffService) ResetStaffPassword(staffID int64, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}
	if _, err := s.GetStaffMemberByID(staffID); err != nil {
		return err
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.authRepo.UpdatePassword(s.db, staffID, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to reset staff password: %w", err)
	}
	return nil
}
