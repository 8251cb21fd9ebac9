package db

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert booking: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(assert.AnError))
	assert.False(t, IsUniqueViolation(nil))
}

func TestExists(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(conn, "sqlmock")
	defer db.Close()

	query := "SELECT EXISTS(SELECT 1 FROM trainer_holidays WHERE date = $1)"

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-06-11").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), db, query, "2025-06-11")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-06-12").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	ok, err = Exists(context.Background(), db, query, "2025-06-12")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
