package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the repository surface for account records.
type Accounts interface {
	repository.Repository[*Account]

	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error)
	CreateWithRoles(ctx context.Context, record *Account, roles ...*Role) (*Account, error)
	CreateWithRolesTx(ctx context.Context, tx bun.IDB, record *Account, roles ...*Role) (*Account, error)
}

type accounts struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accounts)(nil)
	_ repository.Repository[*Account] = (*accounts)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &accounts{
		Repository: repo,
		db:         db,
	}
}

func (a *accounts) GetByUsername(ctx context.Context, username string) (*Account, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

// GetByUsernameTx loads the account with its roles by exact username
// match.
func (a *accounts) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error) {
	record := &Account{}

	err := tx.NewSelect().
		Model(record).
		Relation("Roles").
		Where("?TableAlias.username = ?", strings.TrimSpace(username)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"username": username,
				})
		}
		return nil, err
	}

	return record, nil
}

// CreateWithRoles runs the insert and its role links in one
// transaction, so a failed link insert leaves no account row behind.
func (a *accounts) CreateWithRoles(ctx context.Context, record *Account, roles ...*Role) (*Account, error) {
	var created *Account

	err := a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		created, txErr = a.CreateWithRolesTx(ctx, tx, record, roles...)
		return txErr
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}

// CreateWithRolesTx inserts the account and its role links. The unique
// constraint on username is the source of truth for concurrent
// registrations; a violation is reported as a conflict.
func (a *accounts) CreateWithRolesTx(ctx context.Context, tx bun.IDB, record *Account, roles ...*Role) (*Account, error) {
	prepareAccountDefaults(record)

	record, err := a.Repository.CreateTx(ctx, tx, record)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "username already exists").
				WithTextCode("USERNAME_TAKEN")
		}
		return nil, err
	}

	for _, role := range roles {
		if role == nil {
			continue
		}

		link := &AccountRole{
			AccountID: record.ID,
			RoleID:    role.ID,
		}
		if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not attach role to account")
		}
	}

	record.Roles = append([]*Role(nil), roles...)

	return record, nil
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
