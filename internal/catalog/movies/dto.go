package movies

import "IMDB-backend/internal/catalog/genres"

// ===== Requests =====

// FormInput はフォームから届いた生の値（パース前）
type FormInput struct {
	Title     string
	Year      string
	Rate      string
	StoryLine string
	GenreID   string
}

// ===== Form model =====

// MovieForm は1リクエスト分のフォーム状態。ジャンル一覧は毎回詰め直す。
type MovieForm struct {
	ID        *int64         `json:"id,omitempty"`
	Title     string         `json:"title"`
	Year      int            `json:"year"`
	Rate      float64        `json:"rate"`
	StoryLine string         `json:"story_line"`
	GenreID   uint8          `json:"genre_id"`
	Poster    []byte         `json:"poster,omitempty"`
	Genres    []genres.Genre `json:"genres"`
}

// ===== Responses =====

type MovieSummary struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Rate      float64 `json:"rate"`
	StoryLine string  `json:"story_line"`
	GenreID   uint8   `json:"genre_id"`
	PosterURL string  `json:"poster_url"`
}

type MovieDetail struct {
	MovieSummary
	Genre genres.Genre `json:"genre"`
}

type ListResponse struct {
	Items []MovieSummary `json:"items"`
	Total int            `json:"total"`
}

type SavedResponse struct {
	ID       int64  `json:"id"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
