package directory

import (
	"context"
	"sync"
	"time"

	"github.com/janus-id/janus/core"
)

// MemoryDirectory is an in-memory implementation of the UserDirectory
// interface, used in development and tests. The mutex spans each uniqueness
// check and write, mirroring the constraint-level atomicity of Postgres.
type MemoryDirectory struct {
	users map[string]*core.User
	mu    sync.Mutex
}

// NewMemoryDirectory creates a new in-memory user directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]*core.User)}
}

// FindByID fetches a user by id.
func (d *MemoryDirectory) FindByID(ctx context.Context, id string) (*core.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if user, ok := d.users[id]; ok {
		return clone(user), nil
	}
	return nil, core.Errf(core.KindNotFound, "user not found")
}

// FindByUsername fetches a user by username.
func (d *MemoryDirectory) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	return d.findBy(func(u *core.User) bool { return u.Username == username })
}

// FindByEmail fetches a user by email.
func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	return d.findBy(func(u *core.User) bool { return u.Email != "" && u.Email == email })
}

// FindByWalletAddress fetches a user by wallet address.
func (d *MemoryDirectory) FindByWalletAddress(ctx context.Context, address string) (*core.User, error) {
	return d.findBy(func(u *core.User) bool { return u.WalletAddress != "" && u.WalletAddress == address })
}

// ExistsByUsernameOrEmail reports whether any record uses the username or
// the email.
func (d *MemoryDirectory) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Username == username || (u.Email != "" && u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

// Insert stores a new user, enforcing uniqueness of username, email and
// wallet address.
func (d *MemoryDirectory) Insert(ctx context.Context, user *core.User) (*core.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Username == user.Username ||
			(user.Email != "" && u.Email == user.Email) ||
			(user.WalletAddress != "" && u.WalletAddress == user.WalletAddress) {
			return nil, core.Errf(core.KindConflict, "user already exists")
		}
	}

	d.users[user.ID] = clone(user)
	return clone(user), nil
}

// Update applies a partial update and returns the fresh record.
func (d *MemoryDirectory) Update(ctx context.Context, id string, patch core.UserPatch) (*core.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return nil, core.Errf(core.KindNotFound, "user not found")
	}

	if patch.WalletAddress != nil && *patch.WalletAddress != "" {
		for _, u := range d.users {
			if u.ID != id && u.WalletAddress == *patch.WalletAddress {
				return nil, core.Errf(core.KindConflict, "wallet address already in use")
			}
		}
		user.WalletAddress = *patch.WalletAddress
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Verified != nil {
		user.Verified = *patch.Verified
	}
	user.UpdatedAt = time.Now()

	return clone(user), nil
}

func (d *MemoryDirectory) findBy(match func(*core.User) bool) (*core.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, core.Errf(core.KindNotFound, "user not found")
}

func clone(u *core.User) *core.User {
	c := *u
	return &c
}
