package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janus-id/janus/core"
)

// Expected table shape:
//
//	CREATE TABLE users (
//	    id             UUID PRIMARY KEY,
//	    username       TEXT NOT NULL UNIQUE,
//	    email          TEXT UNIQUE,
//	    password_hash  TEXT,
//	    wallet_address TEXT UNIQUE,
//	    verified       BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    updated_at     TIMESTAMPTZ NOT NULL
//	);
const userColumns = `id, username, email, password_hash, wallet_address, verified, created_at, updated_at`

const uniqueViolationCode = "23505"

// PostgresDirectory is a Postgres implementation of the UserDirectory
// interface. Uniqueness of username, email and wallet address rests on the
// table constraints, so concurrent inserts cannot both win.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a new Postgres-backed user directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

// FindByID fetches a user by id.
func (d *PostgresDirectory) FindByID(ctx context.Context, id string) (*core.User, error) {
	return d.findOne(ctx, "id = $1", id)
}

// FindByUsername fetches a user by username.
func (d *PostgresDirectory) FindByUsername(ctx context.Context, username string) (*core.User, error) {
	return d.findOne(ctx, "username = $1", username)
}

// FindByEmail fetches a user by email.
func (d *PostgresDirectory) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	return d.findOne(ctx, "email = $1", email)
}

// FindByWalletAddress fetches a user by wallet address.
func (d *PostgresDirectory) FindByWalletAddress(ctx context.Context, address string) (*core.User, error) {
	return d.findOne(ctx, "wallet_address = $1", address)
}

// ExistsByUsernameOrEmail reports whether any record uses the username or
// the email.
func (d *PostgresDirectory) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, core.Wrap(core.KindInternal, err, "check user existence")
	}
	return exists, nil
}

// Insert stores a new user. Unique-constraint violations surface as
// Conflict.
func (d *PostgresDirectory) Insert(ctx context.Context, user *core.User) (*core.User, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, err, "parse user id")
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, wallet_address, verified, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, user.Username, nullable(user.Email), nullable(user.PasswordHash),
		nullable(user.WalletAddress), user.Verified, user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.Errf(core.KindConflict, "user already exists")
		}
		return nil, core.Wrap(core.KindInternal, err, "insert user")
	}

	return user, nil
}

// Update applies a partial update and returns the fresh record.
func (d *PostgresDirectory) Update(ctx context.Context, id string, patch core.UserPatch) (*core.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, core.Errf(core.KindNotFound, "user not found")
	}

	sets := []string{"updated_at = $2"}
	args := []any{userID, time.Now().UTC()}

	if patch.WalletAddress != nil {
		args = append(args, nullable(*patch.WalletAddress))
		sets = append(sets, fmt.Sprintf("wallet_address = $%d", len(args)))
	}
	if patch.PasswordHash != nil {
		args = append(args, nullable(*patch.PasswordHash))
		sets = append(sets, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	if patch.Verified != nil {
		args = append(args, *patch.Verified)
		sets = append(sets, fmt.Sprintf("verified = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), userColumns,
	)

	user, err := scanUser(d.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.Errf(core.KindNotFound, "user not found")
		}
		if isUniqueViolation(err) {
			return nil, core.Errf(core.KindConflict, "wallet address already in use")
		}
		return nil, core.Wrap(core.KindInternal, err, "update user")
	}

	return user, nil
}

func (d *PostgresDirectory) findOne(ctx context.Context, where string, arg any) (*core.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, where)

	user, err := scanUser(d.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.Errf(core.KindNotFound, "user not found")
		}
		return nil, core.Wrap(core.KindInternal, err, "query user")
	}

	return user, nil
}

func scanUser(row pgx.Row) (*core.User, error) {
	var (
		id                          uuid.UUID
		email, passwordHash, wallet *string
		createdAt, updatedAt        time.Time
		user                        core.User
	)

	err := row.Scan(&id, &user.Username, &email, &passwordHash, &wallet,
		&user.Verified, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	user.ID = id.String()
	user.Email = deref(email)
	user.PasswordHash = deref(passwordHash)
	user.WalletAddress = deref(wallet)
	user.CreatedAt = createdAt.UTC()
	user.UpdatedAt = updatedAt.UTC()
	return &user, nil
}

// isUniqueViolation reports whether the error is a Postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// nullable maps the empty string to NULL so optional unique columns do not
// collide on "".
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
