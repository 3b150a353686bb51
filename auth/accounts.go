package auth

import (
	"context"
	"strings"
)

// StaticAccounts is an in-memory account list keyed by username, holding
// bcrypt password hashes. Lookups ignore username case.
type StaticAccounts map[string]string

// NormalizeUsername is the canonical form usernames are compared and stored in.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func NewStaticAccounts(hashes map[string]string) StaticAccounts {
	accounts := make(StaticAccounts, len(hashes))
	for username, hash := range hashes {
		accounts[NormalizeUsername(username)] = hash
	}
	return accounts
}

// GetByUsername implements [AccountRepository].
func (s StaticAccounts) GetByUsername(_ context.Context, username string) (Account, error) {
	key := NormalizeUsername(username)
	hash, ok := s[key]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return Account{Username: key, PasswordHash: hash}, nil
}
