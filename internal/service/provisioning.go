// Package service holds workflows that span multiple repositories.
package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/repository"
)

// Provisioner creates the records every new account depends on.  It runs
// synchronously inside the registration transaction, so an account and its
// balance commit or roll back together; there is no window in which an
// account exists without a balance.
type Provisioner struct {
	Balances  *repository.BalanceRepo
	Charities *repository.CharityRepo
}

func NewProvisioner(b *repository.BalanceRepo, c *repository.CharityRepo) *Provisioner {
	return &Provisioner{Balances: b, Charities: c}
}

// ProvisionAccount creates the dependent records for a freshly inserted
// account, in order: the zero balance (always), then the charity profile
// (CHARITY role only).  Re-running for the same account fails with
// repository.ErrDuplicateBalance / ErrDuplicateCharityProfile via the
// one-row-per-account unique keys; callers treating those as "already
// provisioned" get an idempotent reconciliation path.
func (p *Provisioner) ProvisionAccount(ctx context.Context, tx *sql.Tx, acc *model.Account) error {
	if err := p.Balances.CreateTx(ctx, tx, acc.ID); err != nil {
		return err
	}
	if acc.Role != model.RoleCharity {
		return nil
	}
	profile := &model.CharityProfile{
		UserID:      acc.ID,
		Name:        CharityName(acc.FirstName, acc.Username, acc.Email),
		Description: fmt.Sprintf("Auto-created organization profile for %s", acc.Email),
		// RegNumber stays unset until the organization supplies it.
	}
	return p.Charities.CreateTx(ctx, tx, profile)
}

// CharityName derives the organization name for an auto-created profile.
// Fallback order: first name, then username, then the local part of the
// email.
func CharityName(firstName, username, email string) string {
	base := firstName
	if base == "" {
		base = username
	}
	if base == "" {
		base = repository.EmailLocalPart(email)
	}
	return fmt.Sprintf("Charity %s", base)
}
