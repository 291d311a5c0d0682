package audit

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("authn", int(SeverityInfo), FacilityAuthPriv, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(AuthenticateEvent{
		UserID:   "u-1",
		Email:    "alice@example.com",
		ClientIP: "10.0.0.1",
		Success:  true,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSaveNilDB(t *testing.T) {
	store := &Store{}
	err := store.Save(AuthenticateEvent{Email: "a@b.c", Success: true})
	assert.NoError(t, err)
}

func TestNewStoreWithoutURL(t *testing.T) {
	t.Setenv("AUDIT_DATABASE_URL", "")
	store, err := NewStore()
	assert.NoError(t, err)
	assert.Nil(t, store)
}
