package genres

import (
	"context"

	"IMDB-backend/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

// ListByName: 名前順（フォームのセレクト用）
func (s *Store) ListByName(ctx context.Context) ([]Genre, error) {
	const q = `SELECT id, name FROM genres ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Genre, 0, 16)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) GetByID(ctx context.Context, id uint8) (*Genre, error) {
	const q = `SELECT id, name FROM genres WHERE id = ?`
	var g Genre
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name); err != nil {
		return nil, err
	}
	return &g, nil
}
