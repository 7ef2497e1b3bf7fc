package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository backed by Postgres.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, name, email, password, role, phone, address, created_at"

func (r *userRepository) Create(ctx context.Context, u *entity.User) (int64, error) {
	if u.Role == "" {
		u.Role = "user"
	}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password, role, phone, address, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Address, time.Now(),
	).Scan(&u.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return u.ID, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (entity.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Address, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return entity.User{}, repository.ErrNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email, role, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *userRepository) Promote(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET role = 'admin' WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
