package auth

import (
	"context"
	"errors"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"IMDB-backend/internal/platform/db"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrAuthFailed    = errors.New("authentication failed")
	ErrDisabled      = errors.New("account disabled")
	ErrInvalidInput  = errors.New("invalid input")
)

type AuthService interface {
	Login(ctx context.Context, id, password string) (string, error)
	Register(ctx context.Context, id, password, role string) error
}

type Service struct {
	db       db.TxBeginner
	store    AccountStore
	newStore func(db.DBTX) AccountStore
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService: conn は *sql.DB を想定
func NewService(conn interface {
	db.DBTX
	db.TxBeginner
}, secret []byte, ttl time.Duration) *Service {
	return &Service{
		db:       conn,
		store:    NewStore(conn),
		newStore: NewStore,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Service) Secret() []byte { return s.secret }

func (s *Service) Login(ctx context.Context, id, password string) (string, error) {
	acct, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", ErrAuthFailed
	}
	if acct.IsDisabled {
		return "", ErrDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acct.ID,
		"role": acct.Role,
		"exp":  s.now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Register: 存在チェックと INSERT を同一Txで行う
func (s *Service) Register(ctx context.Context, id, password, role string) error {
	if id == "" || len(password) < 8 {
		return ErrInvalidInput
	}
	if role != RoleAdmin && role != RoleUser {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		st := s.newStore(tx)
		exists, err := st.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exists != nil {
			return ErrAlreadyExists
		}
		err = st.Create(ctx, &Account{
			ID:           id,
			PasswordHash: string(hash),
			Role:         role,
		})
		// 並行登録で PK が衝突した場合
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrAlreadyExists
		}
		return err
	})
}
