package movies

import "IMDB-backend/internal/catalog/genres"

// Movie は movies テーブルの1行。Genre は詳細取得時のみ埋まる。
type Movie struct {
	ID        int64
	Title     string
	Year      int
	Rate      float64
	StoryLine string
	GenreID   uint8
	Poster    []byte
	Genre     *genres.Genre
}

func (m *Movie) toSummary() MovieSummary {
	return MovieSummary{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Rate:      m.Rate,
		StoryLine: m.StoryLine,
		GenreID:   m.GenreID,
	}
}

func (m *Movie) toForm(gs []genres.Genre) *MovieForm {
	id := m.ID
	return &MovieForm{
		ID:        &id,
		Title:     m.Title,
		Year:      m.Year,
		Rate:      m.Rate,
		StoryLine: m.StoryLine,
		GenreID:   m.GenreID,
		Poster:    m.Poster,
		Genres:    gs,
	}
}

// apply: フォームの値を既存行へ上書き（ポスターは別扱い）
func (m *Movie) apply(f MovieForm) {
	m.Title = f.Title
	m.GenreID = f.GenreID
	m.Year = f.Year
	m.Rate = f.Rate
	m.StoryLine = f.StoryLine
}
