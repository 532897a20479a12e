package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret-key-for-jwt-signing-must-be-long-enough")

type memStore struct{ accounts map[string]*Account }

func (m *memStore) GetByID(_ context.Context, id string) (*Account, error) {
	return m.accounts[id], nil
}

func (m *memStore) Create(_ context.Context, a *Account) error {
	m.accounts[a.ID] = a
	return nil
}

func newLoginService(t *testing.T, acct *Account) *Service {
	t.Helper()
	st := &memStore{accounts: map[string]*Account{}}
	if acct != nil {
		st.accounts[acct.ID] = acct
	}
	return &Service{store: st, secret: testSecret, ttl: time.Hour, now: time.Now}
}

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	svc := newLoginService(t, &Account{ID: "root", PasswordHash: hashOf(t, "password1"), Role: RoleAdmin})

	tok, err := svc.Login(context.Background(), "root", "password1")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tok, func(*jwt.Token) (any, error) { return testSecret, nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "root", claims["sub"])
	assert.Equal(t, RoleAdmin, claims["role"])
}

func TestLogin_Failures(t *testing.T) {
	svc := newLoginService(t, &Account{ID: "root", PasswordHash: hashOf(t, "password1"), Role: RoleAdmin})
	_, err := svc.Login(context.Background(), "root", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)

	_, err = svc.Login(context.Background(), "nobody", "password1")
	assert.ErrorIs(t, err, ErrAuthFailed)

	disabled := newLoginService(t, &Account{ID: "old", PasswordHash: hashOf(t, "password1"), IsDisabled: true})
	_, err = disabled.Login(context.Background(), "old", "password1")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestRegister_InsertsInsideTx(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM auth_accounts").WithArgs("editor").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "role", "is_disabled", "created_at"}))
	mock.ExpectExec("INSERT INTO auth_accounts").
		WithArgs("editor", sqlmock.AnyArg(), RoleUser).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewService(conn, testSecret, time.Hour)
	require.NoError(t, svc.Register(context.Background(), "editor", "password1", RoleUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Duplicate(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM auth_accounts").WithArgs("root").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "role", "is_disabled", "created_at"}).
			AddRow("root", "x", RoleAdmin, 0, time.Now()))
	mock.ExpectRollback()

	svc := NewService(conn, testSecret, time.Hour)
	err = svc.Register(context.Background(), "root", "password1", RoleAdmin)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := newLoginService(t, nil)
	assert.ErrorIs(t, svc.Register(context.Background(), "a", "short", RoleUser), ErrInvalidInput)
	assert.ErrorIs(t, svc.Register(context.Background(), "a", "password1", "owner"), ErrInvalidInput)
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAuth(testSecret), RequireRole(RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter()
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer invalid-token", http.StatusUnauthorized},
		{"no exp", "Bearer " + signed(t, jwt.MapClaims{"sub": "root", "role": RoleAdmin}), http.StatusUnauthorized},
		{"non admin", "Bearer " + signed(t, jwt.MapClaims{"sub": "bob", "role": RoleUser, "exp": exp}), http.StatusForbidden},
		{"admin", "Bearer " + signed(t, jwt.MapClaims{"sub": "root", "role": RoleAdmin, "exp": exp}), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestLoginHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newLoginService(t, &Account{ID: "root", PasswordHash: hashOf(t, "password1"), Role: RoleAdmin})
	r := gin.New()
	RegisterRoutes(r, r, svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"id":"root","password":"password1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"id":"root","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
