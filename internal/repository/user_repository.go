package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/examsync/examsync-api/internal/models"
)

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository instantiates a user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT user_id, first_name, middle_name, last_name, email_address, contact_number,
	       avatar_url, status, user_uuid, password_hash, created_at
	FROM users`

// List returns users matching the filter, most recently registered first.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := userSelect
	var (
		conds []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conds = append(conds, "(first_name ILIKE $"+n+" OR last_name ILIKE $"+n+" OR email_address ILIKE $"+n+")")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC" + limitOffset(filter.Page, filter.PageSize)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID loads one user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, userSelect+" WHERE user_id = $1", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads one user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, userSelect+" WHERE email_address = $1", email); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user and fills in the generated identifier.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (first_name, middle_name, last_name, email_address, contact_number,
		                   avatar_url, status, user_uuid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id, created_at`
	row := r.db.QueryRowxContext(ctx, query,
		user.FirstName, user.MiddleName, user.LastName, user.Email,
		user.ContactNumber, user.AvatarURL, user.Status, user.UUID)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists profile changes to a user. Password hashes move through
// UpdatePassword only.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET first_name = :first_name, middle_name = :middle_name, last_name = :last_name,
		    email_address = :email_address, contact_number = :contact_number,
		    avatar_url = :avatar_url, status = :status, user_uuid = :user_uuid
		WHERE user_id = :user_id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword stores a new password hash for the user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE user_id = $2`, passwordHash, id); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
