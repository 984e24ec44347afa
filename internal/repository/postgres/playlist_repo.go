package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

const playlistColumns = `p.id, p.user_id, p.title, p.description, p.tags, p.cover_gradient, p.is_public, p.likes_count, p.created_at, p.updated_at,
	u.username, u.avatar_url,
	(SELECT count(*) FROM songs s WHERE s.playlist_id = p.id) AS song_count`

type PlaylistRepo struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepo(pool *pgxpool.Pool) *PlaylistRepo {
	return &PlaylistRepo{pool: pool}
}

func (r *PlaylistRepo) Create(ctx context.Context, p *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, user_id, title, description, tags, cover_gradient, is_public, likes_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Tags,
		p.CoverGradient, p.IsPublic, p.LikesCount, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	query := "SELECT " + playlistColumns + " FROM playlists p JOIN users u ON u.id = p.user_id WHERE p.id = $1"

	var p domain.Playlist
	err := r.pool.QueryRow(ctx, query, id).Scan(playlistFields(&p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaylistRepo) List(ctx context.Context, filter repository.PlaylistFilter) ([]domain.Playlist, int, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.OwnerID != nil {
		conds = append(conds, "p.user_id = "+arg(*filter.OwnerID))
		// Owners see their own private playlists, everyone else does not.
		if filter.ViewerID == nil || *filter.ViewerID != *filter.OwnerID {
			conds = append(conds, "p.is_public")
		}
	} else {
		conds = append(conds, "p.is_public")
	}

	if filter.Tag != "" {
		conds = append(conds, arg(filter.Tag)+" = ANY(p.tags)")
	}

	where := "WHERE " + strings.Join(conds, " AND ")

	order := "ORDER BY p.created_at DESC"
	if filter.Sort == "popular" {
		order = "ORDER BY p.likes_count DESC, p.created_at DESC"
	}

	var total int
	countQuery := fmt.Sprintf("SELECT count(*) FROM playlists p %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM playlists p JOIN users u ON u.id = p.user_id %s %s LIMIT %s OFFSET %s",
		playlistColumns, where, order, arg(filter.Limit), arg(filter.Offset),
	)

	playlists, err := r.queryPlaylists(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// ListByOwners returns recent public playlists by any of the given owners.
// Used for the personalized feed.
func (r *PlaylistRepo) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit, offset int) ([]domain.Playlist, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM playlists p WHERE p.user_id = ANY($1) AND p.is_public",
		ownerIDs,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT " + playlistColumns + `
		FROM playlists p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ANY($1) AND p.is_public
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`

	playlists, err := r.queryPlaylists(ctx, query, ownerIDs, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

func (r *PlaylistRepo) Update(ctx context.Context, p *domain.Playlist) error {
	query := `
		UPDATE playlists
		SET title = $2, description = $3, tags = $4, cover_gradient = $5, is_public = $6, updated_at = $7
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Tags, p.CoverGradient, p.IsPublic, p.UpdatedAt,
	)
	return err
}

func (r *PlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Songs, likes and saves cascade via foreign keys.
	_, err := r.pool.Exec(ctx, "DELETE FROM playlists WHERE id = $1", id)
	return err
}

// Like records a like and bumps the counter. Returns false if the user had
// already liked the playlist.
func (r *PlaylistRepo) Like(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO playlist_likes (user_id, playlist_id, created_at) VALUES ($1, $2, now())",
		userID, playlistID,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = r.pool.Exec(ctx,
		"UPDATE playlists SET likes_count = likes_count + 1 WHERE id = $1", playlistID)
	return true, err
}

func (r *PlaylistRepo) Unlike(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM playlist_likes WHERE user_id = $1 AND playlist_id = $2",
		userID, playlistID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx,
		"UPDATE playlists SET likes_count = likes_count - 1 WHERE id = $1", playlistID)
	return true, err
}

func (r *PlaylistRepo) IsLiked(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM playlist_likes WHERE user_id = $1 AND playlist_id = $2)",
		userID, playlistID,
	).Scan(&liked)
	return liked, err
}

func (r *PlaylistRepo) Save(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO saved_playlists (user_id, playlist_id, created_at) VALUES ($1, $2, now())",
		userID, playlistID,
	)
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PlaylistRepo) Unsave(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM saved_playlists WHERE user_id = $1 AND playlist_id = $2",
		userID, playlistID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PlaylistRepo) IsSaved(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	var saved bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM saved_playlists WHERE user_id = $1 AND playlist_id = $2)",
		userID, playlistID,
	).Scan(&saved)
	return saved, err
}

func (r *PlaylistRepo) ListSaved(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Playlist, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM saved_playlists WHERE user_id = $1", userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT " + playlistColumns + `
		FROM saved_playlists sp
		JOIN playlists p ON p.id = sp.playlist_id
		JOIN users u ON u.id = p.user_id
		WHERE sp.user_id = $1
		ORDER BY sp.created_at DESC LIMIT $2 OFFSET $3`

	playlists, err := r.queryPlaylists(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

func (r *PlaylistRepo) queryPlaylists(ctx context.Context, query string, args ...any) ([]domain.Playlist, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []domain.Playlist
	for rows.Next() {
		var p domain.Playlist
		if err := rows.Scan(playlistFields(&p)...); err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func playlistFields(p *domain.Playlist) []any {
	return []any{
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.Tags,
		&p.CoverGradient, &p.IsPublic, &p.LikesCount, &p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.UserAvatar, &p.SongCount,
	}
}
