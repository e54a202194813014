package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// AuthRepository defines the interface for user and staff-roster database
// operations. Users double as the staff roster, so staff management lives
// here too.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByEmail(email string) (*models.User, string, error) // Returns User, HashedPassword, Error
	FindUserByID(userID int64) (*models.User, error)
	ListStaff(activeOnly bool) ([]models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	UpdatePassword(executor SQLExecutor, userID int64, hashedPassword string) error
	SetActive(executor SQLExecutor, userID int64, active bool) error
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	db *sql.DB // The direct database connection pool
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, hourly_rate, is_active, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.HourlyRate, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

// CreateUser inserts a new user. IsActive defaults to true; CreatedAt and
// UpdatedAt are set to the current time.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (name, email, password_hash, role, hourly_rate, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()

	var userID int64
	err := executor.QueryRow(
		query,
		user.Name,
		user.Email,
		hashedPassword,
		user.Role,
		user.HourlyRate,
		true,
		currentTime,
		currentTime,
	).Scan(&userID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

// FindUserByEmail retrieves a user by email, returning the model and the
// stored password hash for credential checks.
func (r *authRepository) FindUserByEmail(email string) (*models.User, string, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("finding user by email %s: %w", email, err)
	}
	return user, user.PasswordHash, nil
}

// FindUserByID retrieves a user by their ID.
func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding user by ID %d: %w", userID, err)
	}
	return user, nil
}

// ListStaff returns all users with the STAFF role, ordered by name.
func (r *authRepository) ListStaff(activeOnly bool) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	args := []interface{}{models.RoleStaff}
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	staff := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff rows: %v", ErrDatabaseError, err)
	}
	return staff, nil
}

// UpdateUser writes name, hourly rate and active flag for an existing user.
func (r *authRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET name = $1, hourly_rate = $2, is_active = $3, updated_at = $4
	          WHERE id = $5
	          RETURNING updated_at`

	user.UpdatedAt = time.Now()
	err := executor.QueryRow(query, user.Name, user.HourlyRate, user.IsActive, user.UpdatedAt, user.ID).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *authRepository) UpdatePassword(executor SQLExecutor, userID int64, hashedPassword string) error {
	result, err := executor.Exec(`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hashedPassword, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("%w: updating password for user ID %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive toggles the active flag. Deactivation stands in for deletion so
// historical shifts and timesheets keep their staff reference.
func (r *authRepository) SetActive(executor SQLExecutor, userID int64, active bool) error {
	result, err := executor.Exec(`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("%w: setting active=%t for user ID %d: %v", ErrDatabaseError, active, userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
