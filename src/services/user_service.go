package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles the admin account: authentication and credential updates
type UserService struct {
	pool *pgxpool.Pool
	repo repositories.AdminRepository
}

// NewUserService creates a new user service
func NewUserService(pool *pgxpool.Pool) *UserService {
	return &UserService{pool: pool}
}

// NewUserServiceWithRepo creates a new user service with repository (for testing)
func NewUserServiceWithRepo(repo repositories.AdminRepository) *UserService {
	return &UserService{repo: repo}
}

// Authenticate verifies username and password, returning the account on
// success. Unknown usernames and bad passwords are indistinguishable to the
// caller.
func (us *UserService) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	user, err := us.getByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort: login must not fail because of this
	if err := us.updateLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("username", user.Username).Msg("failed to update last_login")
	}

	return user, nil
}

// Seed creates the default admin account when no account exists yet
func (us *UserService) Seed(ctx context.Context, username, password string) error {
	count, err := us.count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check admin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.AdminUser{Username: username, PasswordHash: string(hash)}
	if err := us.create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Info().Str("username", username).Msg("initial admin account created")
	return nil
}

// UpdateCredentials changes username and/or password of the account. The
// current password must match; at least one of the new fields must be set.
func (us *UserService) UpdateCredentials(ctx context.Context, id int64, currentPassword, newUsername, newPassword string) error {
	user, err := us.getByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	newUsername = strings.TrimSpace(newUsername)
	if newUsername == "" || newUsername == user.Username {
		newUsername = user.Username
		if newPassword == "" {
			return ErrNoChange
		}
	}

	hash := user.PasswordHash
	if newPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(h)
	}

	rows, err := us.update(ctx, id, newUsername, hash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username already taken", ErrValidation)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (us *UserService) getByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	if us.repo != nil {
		user, err := us.repo.GetByUsername(ctx, username)
		if err != nil || user == nil {
			return nil, fmt.Errorf("account not found")
		}
		return user, nil
	}

	user := &models.AdminUser{}
	err := us.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at, last_login
		FROM admin_users
		WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}
	return user, nil
}

func (us *UserService) getByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	if us.repo != nil {
		user, err := us.repo.GetByID(ctx, id)
		if err != nil || user == nil {
			return nil, fmt.Errorf("account not found")
		}
		return user, nil
	}

	user := &models.AdminUser{}
	err := us.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at, last_login
		FROM admin_users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}
	return user, nil
}

func (us *UserService) count(ctx context.Context) (int, error) {
	if us.repo != nil {
		return us.repo.Count(ctx)
	}

	var count int
	err := us.pool.QueryRow(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&count)
	return count, err
}

func (us *UserService) create(ctx context.Context, user *models.AdminUser) error {
	if us.repo != nil {
		return us.repo.Create(ctx, user)
	}

	return us.pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, user.Username, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)
}

func (us *UserService) update(ctx context.Context, id int64, username, passwordHash string) (int64, error) {
	if us.repo != nil {
		return us.repo.Update(ctx, id, username, passwordHash)
	}

	tag, err := us.pool.Exec(ctx, `
		UPDATE admin_users SET username = $1, password_hash = $2 WHERE id = $3
	`, username, passwordHash, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (us *UserService) updateLastLogin(ctx context.Context, id int64) error {
	if us.repo != nil {
		return us.repo.UpdateLastLogin(ctx, id)
	}

	_, err := us.pool.Exec(ctx, "UPDATE admin_users SET last_login = now() WHERE id = $1", id)
	return err
}
