package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/cieslarmichal/just-join-us-auth/internal/auth/repository/postgres"
)

func TestRevoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewBlacklistRepository(mock)
	expiresAt := time.Now().Add(time.Hour)

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO blacklisted_tokens").
			WithArgs("token-abc", expiresAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Revoke(ctx, "token-abc", expiresAt)
		assert.NoError(t, err)
	})

	t.Run("duplicate is a no-op", func(t *testing.T) {
		// ON CONFLICT DO NOTHING reports zero rows but no error.
		mock.ExpectExec("INSERT INTO blacklisted_tokens").
			WithArgs("token-abc", expiresAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err := r.Revoke(ctx, "token-abc", expiresAt)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO blacklisted_tokens").
			WithArgs("token-abc", expiresAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Revoke(ctx, "token-abc", expiresAt)
		assert.Error(t, err)
	})
}

func TestIsRevoked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewBlacklistRepository(mock)

	ctx := context.Background()

	t.Run("revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("token-abc").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		revoked, err := r.IsRevoked(ctx, "token-abc")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("not revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("token-xyz").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		revoked, err := r.IsRevoked(ctx, "token-xyz")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("token-abc").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.IsRevoked(ctx, "token-abc")
		assert.Error(t, err)
	})
}

func TestDeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewBlacklistRepository(mock)

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM blacklisted_tokens").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		deleted, err := r.DeleteExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM blacklisted_tokens").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.DeleteExpired(ctx)
		assert.Error(t, err)
	})
}
