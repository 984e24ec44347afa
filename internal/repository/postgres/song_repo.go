package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmarkovic/crate/internal/domain"
)

const songColumns = "id, playlist_id, title, artist, url, platform, position, created_at"

type SongRepo struct {
	pool *pgxpool.Pool
}

func NewSongRepo(pool *pgxpool.Pool) *SongRepo {
	return &SongRepo{pool: pool}
}

func (r *SongRepo) Create(ctx context.Context, song *domain.Song) error {
	query := `
		INSERT INTO songs (id, playlist_id, title, artist, url, platform, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		song.ID, song.PlaylistID, song.Title, song.Artist,
		song.URL, song.Platform, song.Position, song.CreatedAt,
	)
	return err
}

func (r *SongRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	var s domain.Song
	err := r.pool.QueryRow(ctx,
		"SELECT "+songColumns+" FROM songs WHERE id = $1", id,
	).Scan(&s.ID, &s.PlaylistID, &s.Title, &s.Artist, &s.URL, &s.Platform, &s.Position, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SongRepo) ListByPlaylist(ctx context.Context, playlistID uuid.UUID) ([]domain.Song, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+songColumns+" FROM songs WHERE playlist_id = $1 ORDER BY position", playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []domain.Song
	for rows.Next() {
		var s domain.Song
		if err := rows.Scan(&s.ID, &s.PlaylistID, &s.Title, &s.Artist, &s.URL, &s.Platform, &s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (r *SongRepo) CountByPlaylist(ctx context.Context, playlistID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM songs WHERE playlist_id = $1", playlistID,
	).Scan(&count)
	return count, err
}

func (r *SongRepo) Update(ctx context.Context, song *domain.Song) error {
	query := "UPDATE songs SET title = $2, artist = $3, url = $4, platform = $5 WHERE id = $1"
	_, err := r.pool.Exec(ctx, query, song.ID, song.Title, song.Artist, song.URL, song.Platform)
	return err
}

func (r *SongRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM songs WHERE id = $1", id)
	return err
}

// Reorder rewrites positions to match the given order.
func (r *SongRepo) Reorder(ctx context.Context, playlistID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range orderedIDs {
		_, err := tx.Exec(ctx,
			"UPDATE songs SET position = $3 WHERE id = $1 AND playlist_id = $2",
			id, playlistID, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
