package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"workforce_backend/internal/models"
	"workforce_backend/pkg/utils"
)

func init() {
	utils.InitJWT("test-secret")
}

func loginRepo(t *testing.T, user *models.User, password string) *mockAuthRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &mockAuthRepo{
		findUserByEmailFn: func(email string) (*models.User, string, error) {
			if email != user.Email {
				return nil, "", errors.New("unexpected email")
			}
			return user, string(hash), nil
		},
		findUserByIDFn: func(int64) (*models.User, error) { return user, nil },
	}
}

func TestLoginUser(t *testing.T) {
	user := activeStaff(4)
	user.Email = "dana@example.com"
	svc := NewAuthService(loginRepo(t, user, "hunter22"), nil)

	resp, err := svc.LoginUser(LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}

	claims, err := utils.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 4 || claims.Role != models.RoleStaff {
		t.Errorf("claims = %+v, want user 4 with STAFF role", claims)
	}
}

func TestLoginUserWrongPassword(t *testing.T) {
	user := activeStaff(4)
	user.Email = "dana@example.com"
	svc := NewAuthService(loginRepo(t, user, "hunter22"), nil)

	_, err := svc.LoginUser(LoginRequest{Email: "dana@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("LoginUser error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestLoginUserUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil)
	_, err := svc.LoginUser(LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("LoginUser error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestLoginUserDeactivated(t *testing.T) {
	user := activeStaff(4)
	user.Email = "dana@example.com"
	user.IsActive = false
	svc := NewAuthService(loginRepo(t, user, "hunter22"), nil)

	_, err := svc.LoginUser(LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("LoginUser error = %v, want %v", err, ErrAccountInactive)
	}
}

func TestRefreshTokens(t *testing.T) {
	user := activeStaff(4)
	user.Email = "dana@example.com"
	svc := NewAuthService(loginRepo(t, user, "hunter22"), nil)

	initial, err := svc.LoginUser(LoginRequest{Email: "dana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	refreshed, err := svc.RefreshTokens(initial.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokens: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a fresh access token")
	}

	if _, err := svc.RefreshTokens("not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("RefreshTokens error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestRegisterUserDefaultsToStaff(t *testing.T) {
	var created *models.User
	repo := &mockAuthRepo{
		createUserFn: func(user *models.User, _ string) (int64, error) {
			user.ID = 4
			created = user
			return 4, nil
		},
		findUserByIDFn: func(int64) (*models.User, error) { return created, nil },
	}
	svc := NewAuthService(repo, nil)

	user, err := svc.RegisterUser(RegisterUserRequest{Name: "Dana", Email: "dana@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Role != models.RoleStaff {
		t.Errorf("role = %s, want default STAFF", user.Role)
	}

	if _, err := svc.RegisterUser(RegisterUserRequest{Name: "X", Email: "x@example.com", Password: "hunter22", Role: "MANAGER"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("RegisterUser error = %v, want %v", err, ErrInvalidRole)
	}
}
