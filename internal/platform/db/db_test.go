package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := writeConfig(t, `
mode: dev
database:
  host: localhost
  port: 3306
  dbname: imdb
auth:
  jwt_secret: s3cret
  token_ttl: 2h
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8443", cfg.Server.Addr)
	assert.Equal(t, int64(8), cfg.Server.MultipartMemoryMB)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.UseTLS())
}

func TestLoadConfig_InvalidMode(t *testing.T) {
	p := writeConfig(t, `
mode: staging
database: {host: localhost, dbname: imdb}
auth: {jwt_secret: x}
`)
	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	p := writeConfig(t, `
mode: release
database: {host: localhost, dbname: imdb}
`)
	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunInTx_CommitAndRollback(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE t").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = RunInTx(context.Background(), conn, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, "UPDATE t SET a = 1")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = RunInTx(context.Background(), conn, nil, func(ctx context.Context, tx DBTX) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
