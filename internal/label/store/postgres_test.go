package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgres(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPostgresPut(t *testing.T) {
	p, mock := newPostgresMock(t)
	label := sampleLabel("id-1")

	mock.ExpectExec("INSERT INTO labels").
		WithArgs(label.LabelID, string(label.Market), label.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.Put(context.Background(), label))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	p, mock := newPostgresMock(t)
	label := sampleLabel("id-1")
	doc, err := json.Marshal(label)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT document FROM labels WHERE label_id").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(doc))

	got, err := p.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, label.LabelID, got.LabelID)
	assert.Equal(t, label.Market, got.Market)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetNotFound(t *testing.T) {
	p, mock := newPostgresMock(t)

	mock.ExpectQuery("SELECT document FROM labels WHERE label_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := p.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPostgresList(t *testing.T) {
	p, mock := newPostgresMock(t)

	first, err := json.Marshal(sampleLabel("id-1"))
	require.NoError(t, err)
	second, err := json.Marshal(sampleLabel("id-2"))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT document FROM labels ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(first).AddRow(second))

	labels, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "id-1", labels[0].LabelID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	p, mock := newPostgresMock(t)

	mock.ExpectExec("DELETE FROM labels WHERE label_id").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.Delete(context.Background(), "id-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteNotFound(t *testing.T) {
	p, mock := newPostgresMock(t)

	mock.ExpectExec("DELETE FROM labels WHERE label_id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPostgresHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	p := NewPostgres(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectPing()
	health := p.Health(context.Background())
	assert.Equal(t, "up", health["status"])
	assert.Equal(t, "postgres", health["backend"])

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	health = p.Health(context.Background())
	assert.Equal(t, "down", health["status"])
	assert.NotEmpty(t, health["error"])
}

func TestPostgresStoreErrorWrapping(t *testing.T) {
	p, mock := newPostgresMock(t)

	mock.ExpectQuery("SELECT document FROM labels WHERE label_id").
		WithArgs("id-1").
		WillReturnError(sql.ErrConnDone)

	_, err := p.Get(context.Background(), "id-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrStoreUnavailable)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORE_ERROR", appErr.Code)
}
