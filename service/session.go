package service

import (
	"context"

	"github.com/janus-id/janus/core"
)

// ValidateSession parses an access token and re-fetches the live user
// record. Token claims only identify the user; the directory stays the
// source of truth, so tokens for deleted accounts are rejected here.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*core.User, error) {
	claims, err := s.tokenizer.VerifySessionToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if core.KindOf(err) == core.KindNotFound {
			return nil, core.Errf(core.KindUnauthorized, "user not found")
		}
		return nil, err
	}

	return user, nil
}
