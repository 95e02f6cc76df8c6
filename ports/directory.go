package ports

import (
	"context"

	"github.com/janus-id/janus/core"
)

// UserDirectory looks up and persists user records. Uniqueness of username,
// email and wallet address is enforced by the backing store itself; Insert
// returns a Conflict error on violation even when a pre-check passed.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*core.User, error)
	FindByUsername(ctx context.Context, username string) (*core.User, error)
	FindByEmail(ctx context.Context, email string) (*core.User, error)
	FindByWalletAddress(ctx context.Context, address string) (*core.User, error)

	// ExistsByUsernameOrEmail reports whether any record already uses the
	// username or the email, in one check.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	Insert(ctx context.Context, user *core.User) (*core.User, error)
	Update(ctx context.Context, id string, patch core.UserPatch) (*core.User, error)
}
