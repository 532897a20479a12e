package genres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		default:
			return 500
		}
	}
	return 500
}

type Service struct {
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{store: NewStore(conn)} }

// ListGenres は movies のフォーム表示からも呼ばれる
func (s *Service) ListGenres(ctx context.Context) ([]Genre, error) {
	return s.store.ListByName(ctx)
}

func (s *Service) GetGenre(ctx context.Context, id uint8) (*Genre, error) {
	g, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("genre not found")
		}
		log.Printf("[ERROR] get genre %d: %v", id, err)
		return nil, ErrInternal("failed to get genre")
	}
	return g, nil
}
