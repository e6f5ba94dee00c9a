package service

import (
	"testing"
	"tossbash/internal/domain"
	"tossbash/internal/store"
	"tossbash/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestRegisterCreatesAccountWithStartingBalance(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	countRows := sqlmock.NewRows([]string{"count(*)"}).AddRow(0)
	mock.ExpectQuery("SELECT count(.+) FROM `users`").WillReturnRows(countRows)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	user, token, err := identity.Register(RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "Ada@Example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StartingBalance, user.WalletBalance)
	assert.Equal(t, "ada@example.com", user.Email) // Lowercased at signup
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password) // Stored hashed

	claims, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	countRows := sqlmock.NewRows([]string{"count(*)"}).AddRow(1)
	mock.ExpectQuery("SELECT count(.+) FROM `users`").WillReturnRows(countRows)

	_, _, err := identity.Register(RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func credentialRow(t *testing.T, password string, active bool) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "wallet_balance", "is_active"}).
		AddRow(1, "ada", "ada@example.com", string(hash), 1000, active)
}

func TestAuthenticateIssuesToken(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(credentialRow(t, "secret123", true))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1)) // last_login touch
	mock.ExpectCommit()

	user, token, err := identity.Authenticate("Ada@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	claims, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(credentialRow(t, "secret123", true))

	_, _, err := identity.Authenticate("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := identity.Authenticate("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	db, mock := newMockDB(t)
	identity := NewIdentity(store.NewAccountStore(db), testSecret)

	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnRows(credentialRow(t, "secret123", false))

	_, _, err := identity.Authenticate("ada@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}
