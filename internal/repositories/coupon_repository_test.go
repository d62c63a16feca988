package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCouponRepoTest(t *testing.T) (repository.CouponRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCouponRepo(db)
	require.NotNil(t, repo, "NewCouponRepo should return a non-nil repository")

	return repo, mock
}

func TestGetCouponByCode(t *testing.T) {
	repo, mock := setupCouponRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`
		SELECT code, percent, active, created_at
		FROM coupons
		WHERE code = $1
	`)

	t.Run("Success - Active Coupon", func(t *testing.T) {
		// Arrange
		rows := sqlmock.NewRows([]string{"code", "percent", "active", "created_at"}).
			AddRow("SPRING10", 10.0, true, time.Now())
		mock.ExpectQuery(expectedSQL).WithArgs("SPRING10").WillReturnRows(rows)

		// Act
		coupon, err := repo.GetCouponByCode(ctx, "SPRING10")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "SPRING10", coupon.Code)
		assert.Equal(t, 10.0, coupon.Percent)
		assert.True(t, coupon.Active)
	})

	t.Run("Failure - Unknown Code", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).WithArgs("NOPE").WillReturnError(sql.ErrNoRows)

		// Act
		coupon, err := repo.GetCouponByCode(ctx, "NOPE")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, coupon)
	})
}

func TestSetCouponActive(t *testing.T) {
	repo, mock := setupCouponRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`UPDATE coupons SET active = $1 WHERE code = $2`)

	t.Run("Success - Deactivate", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).WithArgs(false, "SPRING10").
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.SetCouponActive(ctx, "SPRING10", false)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Unknown Code", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).WithArgs(false, "NOPE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.SetCouponActive(ctx, "NOPE", false)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
