package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Roles() Roles
	// Store is the AccountStore view over the default connection.
	Store() AccountStore
	// StoreTx is the AccountStore view scoped to a transaction.
	StoreTx(tx bun.IDB) AccountStore
}

type mngr struct {
	db       *bun.DB
	accounts Accounts
	roles    Roles
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		accounts: NewAccountsRepository(db),
		roles:    NewRolesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.roles == nil {
		return errors.New("repository roles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}

func (m mngr) Roles() Roles {
	return m.roles
}

func (m mngr) Store() AccountStore {
	return storeView{accounts: m.accounts, roles: m.roles}
}

func (m mngr) StoreTx(tx bun.IDB) AccountStore {
	return storeView{accounts: m.accounts, roles: m.roles, tx: tx}
}

// storeView adapts the repositories to the AccountStore contract the
// core components consume. A nil tx means the default connection.
type storeView struct {
	accounts Accounts
	roles    Roles
	tx       bun.IDB
}

var _ AccountStore = storeView{}

func (s storeView) GetByUsername(ctx context.Context, username string) (*Account, error) {
	if s.tx != nil {
		return s.accounts.GetByUsernameTx(ctx, s.tx, username)
	}
	return s.accounts.GetByUsername(ctx, username)
}

func (s storeView) RoleByName(ctx context.Context, name string) (*Role, error) {
	if s.tx != nil {
		return s.roles.GetByNameTx(ctx, s.tx, name)
	}
	return s.roles.GetByName(ctx, name)
}

func (s storeView) CreateWithRoles(ctx context.Context, account *Account, roles ...*Role) (*Account, error) {
	if s.tx != nil {
		return s.accounts.CreateWithRolesTx(ctx, s.tx, account, roles...)
	}
	return s.accounts.CreateWithRoles(ctx, account, roles...)
}
