package service

import (
	"errors"
	"strings"
	"time"
	"tossbash/internal/domain" // Importing domain models
	"tossbash/internal/store"
	"tossbash/internal/utils" // JWT utility functions

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterInput carries a validated signup request into the identity service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// Identity verifies credentials and issues bearer tokens. Raw passwords pass
// through here only; they are never stored or logged.
type Identity struct {
	accounts  *store.AccountStore
	jwtSecret string
}

func NewIdentity(accounts *store.AccountStore, jwtSecret string) *Identity {
	return &Identity{accounts: accounts, jwtSecret: jwtSecret}
}

// Register creates an account with the starting balance and returns it with a
// fresh token. Fails with ErrDuplicateIdentity when the username or email is
// taken.
func (s *Identity) Register(in RegisterInput) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Username:      in.Username,
		Email:         strings.ToLower(in.Email),
		Password:      string(hash),
		WalletBalance: domain.StartingBalance,
		IsActive:      true,
		LastLogin:     time.Now(),
	}
	if err := s.accounts.Create(user); err != nil {
		return nil, "", err
	}
	token, err := utils.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate checks email/password, records the login and issues a token.
func (s *Identity) Authenticate(email, password string) (*domain.User, string, error) {
	user, err := s.accounts.FindByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", domain.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := s.accounts.TouchLastLogin(user.ID); err != nil {
		return nil, "", err
	}
	user.LastLogin = time.Now()
	token, err := utils.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile fetches the account behind a verified token.
func (s *Identity) Profile(userID uint) (*domain.User, error) {
	return s.accounts.FindByID(userID)
}

// UpdateProfile applies a partial username/email change.
func (s *Identity) UpdateProfile(userID uint, username, email string) (*domain.User, error) {
	updates := map[string]any{}
	if username != "" {
		updates["username"] = username
	}
	if email != "" {
		updates["email"] = strings.ToLower(email)
	}
	return s.accounts.UpdateProfile(userID, updates)
}
