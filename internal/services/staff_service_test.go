package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
)

func TestCreateStaffMember(t *testing.T) {
	var createdUser *models.User
	var hashed string
	repo := &mockAuthRepo{
		createUserFn: func(user *models.User, hashedPassword string) (int64, error) {
			user.ID = 4
			createdUser = user
			hashed = hashedPassword
			return 4, nil
		},
		findUserByIDFn: func(int64) (*models.User, error) { return createdUser, nil },
	}
	svc := NewStaffService(repo, nil)

	staff, err := svc.CreateStaffMember(CreateStaffMemberRequest{
		Name: "  Dana  ", Email: "dana@example.com", Password: "hunter22", HourlyRate: 20,
	})
	if err != nil {
		t.Fatalf("CreateStaffMember: %v", err)
	}
	if staff.Role != models.RoleStaff {
		t.Errorf("role = %s, want STAFF", staff.Role)
	}
	if staff.Name != "Dana" {
		t.Errorf("name = %q, want trimmed %q", staff.Name, "Dana")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not verify against password: %v", err)
	}
}

func TestCreateStaffMemberValidation(t *testing.T) {
	svc := NewStaffService(&mockAuthRepo{}, nil)

	tests := []struct {
		name    string
		req     CreateStaffMemberRequest
		wantErr error
	}{
		{"blank name", CreateStaffMemberRequest{Name: "  ", Email: "a@b.c", Password: "hunter22"}, ErrStaffDataValidation},
		{"negative rate", CreateStaffMemberRequest{Name: "Dana", Email: "a@b.c", Password: "hunter22", HourlyRate: -1}, ErrStaffDataValidation},
		{"short password", CreateStaffMemberRequest{Name: "Dana", Email: "a@b.c", Password: "12345"}, ErrPasswordTooShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateStaffMember(tc.req); !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateStaffMember error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateStaffMemberDuplicateEmail(t *testing.T) {
	repo := &mockAuthRepo{
		createUserFn: func(*models.User, string) (int64, error) { return 0, repositories.ErrDuplicateKey },
	}
	svc := NewStaffService(repo, nil)
	_, err := svc.CreateStaffMember(CreateStaffMemberRequest{Name: "Dana", Email: "dana@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("CreateStaffMember error = %v, want %v", err, ErrEmailExists)
	}
}

func TestGetStaffMemberByIDRejectsAdmins(t *testing.T) {
	repo := &mockAuthRepo{findUserByIDFn: func(id int64) (*models.User, error) {
		return &models.User{ID: id, Role: models.RoleAdmin, IsActive: true}, nil
	}}
	svc := NewStaffService(repo, nil)
	if _, err := svc.GetStaffMemberByID(1); !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("GetStaffMemberByID error = %v, want %v", err, ErrStaffNotFound)
	}
}

func TestUpdateStaffMemberPartial(t *testing.T) {
	current := activeStaff(4)
	var updated *models.User
	repo := &mockAuthRepo{
		findUserByIDFn: func(int64) (*models.User, error) { return current, nil },
		updateUserFn:   func(user *models.User) error { updated = user; return nil },
	}
	svc := NewStaffService(repo, nil)

	newRate := 25.0
	if _, err := svc.UpdateStaffMember(4, UpdateStaffMemberRequest{HourlyRate: &newRate}); err != nil {
		t.Fatalf("UpdateStaffMember: %v", err)
	}
	if updated.HourlyRate != 25 {
		t.Errorf("rate = %.2f, want 25.00", updated.HourlyRate)
	}
	if updated.Name != "Dana" {
		t.Errorf("name = %q changed by rate-only update", updated.Name)
	}
}

func TestDeactivateStaffMember(t *testing.T) {
	var deactivatedID int64
	var active bool
	repo := &mockAuthRepo{
		findUserByIDFn: func(int64) (*models.User, error) { return activeStaff(4), nil },
		setActiveFn: func(userID int64, a bool) error {
			deactivatedID, active = userID, a
			return nil
		},
	}
	svc := NewStaffService(repo, nil)

	if err := svc.DeactivateStaffMember(4); err != nil {
		t.Fatalf("DeactivateStaffMember: %v", err)
	}
	if deactivatedID != 4 || active {
		t.Errorf("SetActive(%d, %v), want SetActive(4, false)", deactivatedID, active)
	}
}

func TestResetStaffPassword(t *testing.T) {
	var hashed string
	repo := &mockAuthRepo{
		findUserByIDFn:   func(int64) (*models.User, error) { return activeStaff(4), nil },
		updatePasswordFn: func(userID int64, hashedPassword string) error { hashed = hashedPassword; return nil },
	}
	svc := NewStaffService(repo, nil)

	if err := svc.ResetStaffPassword(4, "12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("ResetStaffPassword error = %v, want %v", err, ErrPasswordTooShort)
	}
	if err := svc.ResetStaffPassword(4, "newsecret"); err != nil {
		t.Fatalf("ResetStaffPassword: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("newsecret")); err != nil {
		t.Errorf("stored hash does not verify against new password: %v", err)
	}
}
