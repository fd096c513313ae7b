package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type RegisterAccountMessage struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	Email            string `json:"email"`
	DeterministicIDs bool
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

// RegisterAccountHandler runs the provisioner inside a store
// transaction so the account record and its role links land together.
type RegisterAccountHandler struct {
	repo RepositoryManager
	cost int
}

func NewRegisterAccountHandler(repo RepositoryManager) *RegisterAccountHandler {
	return &RegisterAccountHandler{
		repo: repo,
		cost: DefaultBcryptCost,
	}
}

// WithBcryptCost overrides the hashing work factor used for new accounts.
func (h *RegisterAccountHandler) WithBcryptCost(cost int) *RegisterAccountHandler {
	if cost > 0 {
		h.cost = cost
	}
	return h
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		provisioner := NewAccountProvisioner(h.repo.StoreTx(tx)).WithBcryptCost(h.cost)
		if event.DeterministicIDs {
			provisioner = provisioner.WithDeterministicIDs()
		}

		_, err := provisioner.Register(ctx, event.Username, event.Password, event.Email)
		return err
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return nil
}
