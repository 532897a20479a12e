package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"IMDB-backend/internal/catalog/genres"
	"IMDB-backend/internal/platform/db"
)

// Repository は Service が使う永続化の窓口。単一取得は 0 or 1 件で、なければ nil, nil。
type Repository interface {
	ListByRateDesc(ctx context.Context) ([]Movie, error)
	FindByID(ctx context.Context, id int64) (*Movie, error)
	FindWithGenre(ctx context.Context, id int64) (*Movie, error)
	PosterByID(ctx context.Context, id int64) ([]byte, bool, error)
	Insert(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie, withPoster bool) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

// 一覧はポスター本体を読まない
func (s *Store) ListByRateDesc(ctx context.Context) ([]Movie, error) {
	const q = `
	SELECT id, title, year, rate, story_line, genre_id
	FROM movies
	ORDER BY rate DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Movie{}
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.Rate, &m.StoryLine, &m.GenreID); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*Movie, error) {
	const q = `
	SELECT id, title, year, rate, story_line, genre_id, poster
	FROM movies WHERE id = ?`
	var m Movie
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Year, &m.Rate, &m.StoryLine, &m.GenreID, &m.Poster,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindWithGenre: 詳細表示用。ジャンルを JOIN で同時に取る
func (s *Store) FindWithGenre(ctx context.Context, id int64) (*Movie, error) {
	const q = `
	SELECT m.id, m.title, m.year, m.rate, m.story_line, m.genre_id, g.id, g.name
	FROM movies m
	JOIN genres g ON g.id = m.genre_id
	WHERE m.id = ?`
	var m Movie
	var g genres.Genre
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Year, &m.Rate, &m.StoryLine, &m.GenreID, &g.ID, &g.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Genre = &g
	return &m, nil
}

func (s *Store) PosterByID(ctx context.Context, id int64) ([]byte, bool, error) {
	const q = `SELECT poster FROM movies WHERE id = ?`
	var poster []byte
	err := s.db.QueryRowContext(ctx, q, id).Scan(&poster)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return poster, true, nil
}

func (s *Store) Insert(ctx context.Context, m *Movie) error {
	const q = `
	INSERT INTO movies (title, year, rate, story_line, genre_id, poster)
	VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, m.Title, m.Year, m.Rate, m.StoryLine, m.GenreID, m.Poster)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// Update: withPoster=false のときは poster 列に触れない
func (s *Store) Update(ctx context.Context, m *Movie, withPoster bool) error {
	sets := []string{"title = ?", "year = ?", "rate = ?", "story_line = ?", "genre_id = ?"}
	args := []any{m.Title, m.Year, m.Rate, m.StoryLine, m.GenreID}
	if withPoster {
		sets = append(sets, "poster = ?")
		args = append(args, m.Poster)
	}
	args = append(args, m.ID)

	// RowsAffected は値が変わらないと 0 になるので見ない
	q := fmt.Sprintf(`UPDATE movies SET %s WHERE id = ?`, strings.Join(sets, ", "))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM movies WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
