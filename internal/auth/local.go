package auth

import (
	"context"
	"errors"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/config"
)

// LocalAuthProvider accepts the tokens of the configured users.
type LocalAuthProvider struct {
	users  map[string]internal.User
	logger internal.Logger
}

func (a *LocalAuthProvider) ValidateTokenLocal(token string) (*internal.User, error) {
	if u, ok := a.users[token]; ok && token != "" {
		return &u, nil
	}
	a.logger.Warnf("invalid token: %s", token)
	return nil, ErrInvalidToken
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return nil, errors.New("not implemented in LocalAuthProvider")
}

func NewLocalAuthProvider(users []config.UserConfig, logger internal.Logger) *LocalAuthProvider {
	byToken := make(map[string]internal.User, len(users))
	for _, u := range users {
		byToken[u.Token] = internal.User{ID: u.ID, Token: u.Token, Name: u.Name}
	}
	return &LocalAuthProvider{users: byToken, logger: logger}
}
