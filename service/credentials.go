package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/janus-id/janus/core"
)

const bcryptCost = 10

// SignUp registers a credential account and kicks off email verification.
// The pre-check catches the common duplicate case early; the directory's
// own uniqueness constraints settle concurrent races, so a losing racer
// still gets Conflict from Insert.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*core.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || email == "" || password == "" {
		return nil, core.Errf(core.KindInvalidInput, "username, email and password are required")
	}
	if len(password) < 6 {
		return nil, core.Errf(core.KindInvalidInput, "password must be at least 6 characters long")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, core.Errf(core.KindConflict, "user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, err, "hash password")
	}

	user, err := core.NewCredentialUser(uuid.New().String(), username, email, string(hash), s.now())
	if err != nil {
		return nil, err
	}

	user, err = s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.IssueOTP(ctx, user.Username, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn authenticates an email/password pair and mints a session token.
// Missing users and wrong passwords produce the same message, so the
// response does not reveal which part was wrong.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*core.User, string, error) {
	if email == "" || password == "" {
		return nil, "", core.Errf(core.KindInvalidInput, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if core.KindOf(err) == core.KindNotFound {
			return nil, "", core.Errf(core.KindUnauthorized, "invalid email or password")
		}
		return nil, "", err
	}

	if !user.Verified {
		return nil, "", core.Errf(core.KindUnauthorized, "user is not verified")
	}

	if !user.HasPassword() {
		return nil, "", core.Errf(core.KindUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", core.Errf(core.KindUnauthorized, "invalid email or password")
	}

	token, err := s.tokenizer.IssueSessionToken(user)
	if err != nil {
		return nil, "", core.Wrap(core.KindInternal, err, "issue session token")
	}

	return user, token, nil
}
