package movies

import (
	"context"
	"errors"
	"log"

	"IMDB-backend/internal/catalog/genres"
)

const (
	msgPosterRequired = "Please select movie poster!"
	msgGenreMissing   = "selected genre does not exist"

	MsgCreated = "Movie is added successfully!"
	MsgUpdated = "Movie is updated successfully!"
)

// GenreLister: フォームに載せるジャンル一覧（名前順）
type GenreLister interface {
	ListGenres(ctx context.Context) ([]genres.Genre, error)
}

type Service struct {
	store  Repository
	genres GenreLister
	policy PosterPolicy
}

func NewService(store Repository, gl GenreLister, policy PosterPolicy) *Service {
	return &Service{store: store, genres: gl, policy: policy}
}

func (s *Service) Policy() PosterPolicy { return s.policy }

// ===== 一覧 =====

func (s *Service) List(ctx context.Context) ([]MovieSummary, error) {
	list, err := s.store.ListByRateDesc(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MovieSummary, 0, len(list))
	for i := range list {
		out = append(out, list[i].toSummary())
	}
	return out, nil
}

// ===== 新規 =====

// NewForm: 空フォーム＋ジャンル一覧
func (s *Service) NewForm(ctx context.Context) (*MovieForm, error) {
	gs, err := s.genres.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	return &MovieForm{Genres: gs}, nil
}

func (s *Service) Create(ctx context.Context, in FormInput, poster *PosterFile) (*Movie, error) {
	form, fields := validateForm(in)
	if len(fields) > 0 {
		return nil, s.reject(ctx, form, fields...)
	}

	if !poster.attached() {
		return nil, s.reject(ctx, form, FieldError{Field: FieldPoster, Message: msgPosterRequired})
	}
	data, err := s.loadPoster(ctx, form, poster)
	if err != nil {
		return nil, err
	}

	m := &Movie{Poster: data}
	m.apply(form)
	if err := s.store.Insert(ctx, m); err != nil {
		if isForeignKeyViolation(err) {
			return nil, s.reject(ctx, form, FieldError{Field: FieldGenreID, Message: msgGenreMissing})
		}
		return nil, err
	}
	log.Printf("[INFO] movie created: id=%d title=%q", m.ID, m.Title)
	return m, nil
}

// ===== 編集 =====

func (s *Service) EditForm(ctx context.Context, id *int64) (*MovieForm, error) {
	if id == nil {
		return nil, ErrInvalid("id is required")
	}
	m, err := s.store.FindByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound("movie not found")
	}
	gs, err := s.genres.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	return m.toForm(gs), nil
}

// Edit: 新しいファイルが無ければ既存ポスターはそのまま。同一IDの同時編集は後勝ち。
func (s *Service) Edit(ctx context.Context, id *int64, in FormInput, poster *PosterFile) (*Movie, error) {
	form, fields := validateForm(in)
	form.ID = id
	if len(fields) > 0 {
		return nil, s.reject(ctx, form, fields...)
	}
	if id == nil {
		return nil, ErrInvalid("id is required")
	}

	m, err := s.store.FindByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound("movie not found")
	}

	replace := poster.attached()
	if replace {
		data, err := s.loadPoster(ctx, form, poster)
		if err != nil {
			return nil, err
		}
		m.Poster = data
	}

	m.apply(form)
	if err := s.store.Update(ctx, m, replace); err != nil {
		if isForeignKeyViolation(err) {
			return nil, s.reject(ctx, form, FieldError{Field: FieldGenreID, Message: msgGenreMissing})
		}
		return nil, err
	}
	log.Printf("[INFO] movie updated: id=%d poster_replaced=%t", m.ID, replace)
	return m, nil
}

// ===== 詳細 =====

func (s *Service) Details(ctx context.Context, id *int64) (*MovieDetail, error) {
	if id == nil {
		return nil, ErrInvalid("id is required")
	}
	m, err := s.store.FindWithGenre(ctx, *id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound("movie not found")
	}
	d := &MovieDetail{MovieSummary: m.toSummary()}
	if m.Genre != nil {
		d.Genre = *m.Genre
	}
	return d, nil
}

// ===== 削除 =====

func (s *Service) Delete(ctx context.Context, id *int64) error {
	if id == nil {
		return ErrInvalid("id is required")
	}
	n, err := s.store.Delete(ctx, *id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound("movie not found")
	}
	log.Printf("[INFO] movie deleted: id=%d", *id)
	return nil
}

// ===== ポスター =====

func (s *Service) Poster(ctx context.Context, id *int64) ([]byte, string, error) {
	if id == nil {
		return nil, "", ErrInvalid("id is required")
	}
	data, ok, err := s.store.PosterByID(ctx, *id)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", ErrNotFound("movie not found")
	}
	return data, DetectContentType(data), nil
}

// RejectOversized: 本文が上限を超えて項目を読めなかったときの再表示（ジャンルのみ復元）
func (s *Service) RejectOversized(ctx context.Context) error {
	return s.reject(ctx, MovieForm{}, FieldError{Field: FieldPoster, Message: s.policy.sizeMessage()})
}

// ===== helpers =====

// loadPoster: 拡張子・サイズを検査してから全量読み込む
func (s *Service) loadPoster(ctx context.Context, form MovieForm, poster *PosterFile) ([]byte, error) {
	if fe := s.policy.Check(poster.Name, poster.Size); fe != nil {
		return nil, s.reject(ctx, form, *fe)
	}
	data, err := s.policy.Read(poster)
	if errors.Is(err, ErrPosterTooLarge) {
		return nil, s.reject(ctx, form, FieldError{Field: FieldPoster, Message: s.policy.sizeMessage()})
	}
	if err != nil {
		log.Printf("[ERROR] read uploaded poster: %v", err)
		return nil, ErrInternal("failed to read uploaded poster")
	}
	return data, nil
}

// reject: ジャンル一覧を詰め直したフォームと一緒に ValidationError を返す
func (s *Service) reject(ctx context.Context, form MovieForm, fields ...FieldError) error {
	gs, err := s.genres.ListGenres(ctx)
	if err != nil {
		return err
	}
	form.Genres = gs
	form.Poster = nil
	return &ValidationError{Fields: fields, Form: &form}
}
