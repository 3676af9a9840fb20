package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/google/uuid"
)

const selectUser = `
SELECT id, email, password_hash, is_active, created_at, updated_at
FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	logger.Info("user repository create", logger.Fields{
		"email": user.Email,
	})

	const query = `
INSERT INTO users (id, email, password_hash, is_active)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

	user.ID = uuid.NewString()
	if err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.IsActive).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		logger.Error("user repository create failed", err, logger.Fields{
			"email": user.Email,
		})
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = $1`, email))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
