package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmarkovic/crate/internal/domain"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Follow records a follow edge. Returns false if it already existed.
func (r *FollowRepo) Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO user_follows (follower_id, following_id, created_at) VALUES ($1, $2, now())",
		followerID, followingID,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FollowRepo) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2",
		followerID, followingID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FollowRepo) FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT following_id FROM user_follows WHERE follower_id = $1", followerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *FollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	return r.listEdge(ctx, userID, "f.following_id", "f.follower_id", limit, offset)
}

func (r *FollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	return r.listEdge(ctx, userID, "f.follower_id", "f.following_id", limit, offset)
}

// SuggestedUsers returns users the given user does not yet follow, most
// followed first.
func (r *FollowRepo) SuggestedUsers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	where := `
		WHERE u.id <> $1
		  AND u.id NOT IN (SELECT following_id FROM user_follows WHERE follower_id = $1)`

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users u "+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + prefixedUserColumns("u") + ` FROM users u ` + where + `
		ORDER BY (SELECT count(*) FROM user_follows f WHERE f.following_id = u.id) DESC, u.created_at DESC
		LIMIT $2 OFFSET $3`

	users, err := r.queryUsers(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *FollowRepo) listEdge(ctx context.Context, userID uuid.UUID, matchCol, selectCol string, limit, offset int) ([]domain.User, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM user_follows f WHERE %s = $1", matchCol), userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM user_follows f
		JOIN users u ON u.id = %s
		WHERE %s = $1
		ORDER BY f.created_at DESC LIMIT $2 OFFSET $3`,
		prefixedUserColumns("u"), selectCol, matchCol)

	users, err := r.queryUsers(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *FollowRepo) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func prefixedUserColumns(alias string) string {
	return fmt.Sprintf("%[1]s.id, %[1]s.email, %[1]s.username, %[1]s.password_hash, %[1]s.provider, %[1]s.provider_id, %[1]s.avatar_url, %[1]s.bio, %[1]s.playlist_count, %[1]s.created_at, %[1]s.updated_at", alias)
}
