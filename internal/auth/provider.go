package auth

import (
	"context"
	"errors"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

type Provider interface {
	ValidateTokenLocal(token string) (*internal.User, error)
	ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error)
}

// NewProvider returns the local provider in development and the remote one
// everywhere else.
func NewProvider(cfg *config.Config, logger internal.Logger) Provider {
	if cfg.Env == "development" {
		return NewLocalAuthProvider(cfg.Users, logger)
	}
	return NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
}
