package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmarkovic/crate/internal/domain"
)

const userColumns = "id, email, username, password_hash, provider, provider_id, avatar_url, bio, playlist_count, created_at, updated_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts the user. Unique-constraint violations are mapped to typed
// conflict errors; the constraint, not any pre-check, decides races.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, provider, provider_id, avatar_url, bio, playlist_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.Provider, user.ProviderID, user.AvatarURL, user.Bio,
		user.PlaylistCount, user.CreatedAt, user.UpdatedAt,
	)
	switch {
	case constraintViolated(err, "users_email_key"):
		return domain.ErrEmailTaken
	case constraintViolated(err, "users_username_key"):
		return domain.ErrUsernameTaken
	case isUniqueViolation(err):
		return domain.ErrAccountConflict
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE provider = $1 AND provider_id = $2",
		provider, providerID,
	).Scan(userFields(&u)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LinkProvider attaches a federated identity to an existing record in place.
// The avatar is only backfilled when the record has none.
func (r *UserRepo) LinkProvider(ctx context.Context, id uuid.UUID, provider, providerID string, avatarURL *string) error {
	query := `
		UPDATE users
		SET provider = $2, provider_id = $3,
		    avatar_url = COALESCE(avatar_url, $4),
		    updated_at = now()
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, provider, providerID, avatarURL)
	if isUniqueViolation(err) {
		return domain.ErrAccountConflict
	}
	return err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, bio, avatarURL *string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET bio = $2, avatar_url = $3, updated_at = now() WHERE id = $1",
		id, bio, avatarURL,
	)
	return err
}

func (r *UserRepo) AdjustPlaylistCount(ctx context.Context, id uuid.UUID, delta int) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET playlist_count = playlist_count + $2 WHERE id = $1",
		id, delta,
	)
	return err
}

func (r *UserRepo) List(ctx context.Context, search string, limit, offset int) ([]domain.User, int, error) {
	where := ""
	args := []any{limit, offset}
	if search != "" {
		where = "WHERE username ILIKE '%' || $3 || '%' OR bio ILIKE '%' || $3 || '%'"
		args = append(args, search)
	}

	query := fmt.Sprintf("SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $1 OFFSET $2", userColumns, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := "SELECT count(*) FROM users"
	countArgs := []any{}
	if search != "" {
		countQuery += " WHERE username ILIKE '%' || $1 || '%' OR bio ILIKE '%' || $1 || '%'"
		countArgs = append(countArgs, search)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(userFields(&u)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func userFields(u *domain.User) []any {
	return []any{
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Provider, &u.ProviderID, &u.AvatarURL, &u.Bio,
		&u.PlaylistCount, &u.CreatedAt, &u.UpdatedAt,
	}
}
