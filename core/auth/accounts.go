package auth

import (
	"context"
	"errors"
	"fmt"

	"meditation-backend/model"
	"meditation-backend/repository"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the account flows need.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Accounts implements registration, login and token subject resolution.
type Accounts struct {
	users  UserStore
	tokens *TokenService
}

func NewAccounts(users UserStore, tokens *TokenService) *Accounts {
	return &Accounts{users: users, tokens: tokens}
}

// Register stores a new non-admin user. A taken email yields repository.ErrDuplicateEmail.
func (a *Accounts) Register(ctx context.Context, email, password string) (*model.User, error) {
	_, err := a.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, repository.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: email, PasswordHash: hash}
	// The unique index still guards against a concurrent registration.
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password and returns a signed access token.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := a.tokens.Issue(user.Email, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("issue token for %s: %w", user.Email, err)
	}
	return token, nil
}

// Me resolves verified claims to the stored user.
func (a *Accounts) Me(ctx context.Context, claims *Claims) (*model.User, error) {
	user, err := a.users.GetUserByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
