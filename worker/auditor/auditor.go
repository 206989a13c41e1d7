package auditor

import (
	"context"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/sirupsen/logrus"
)

const checkpointKey = "auditor_checkpoint"

// Auditor re-checks the ledger's solvency invariants: market aggregates must
// equal the per-user sums, and each vault must cover what it owes. It never
// mutates ledger state; a violation is an operator signal.
type Auditor struct {
	worker.TickWorker
	propertyStore property.Store
	marketStore   core.IMarketStore
	accountStore  core.IAccountStore
	tokenStore    core.ITokenStore
}

// New new auditor worker
func New(
	propertyStore property.Store,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	tokenStore core.ITokenStore,
) *Auditor {
	return &Auditor{
		TickWorker: worker.TickWorker{
			Delay:    time.Minute,
			ErrDelay: time.Minute,
		},
		propertyStore: propertyStore,
		marketStore:   marketStore,
		accountStore:  accountStore,
		tokenStore:    tokenStore,
	}
}

// Run run worker
func (w *Auditor) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Auditor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "auditor")

	market, err := w.marketStore.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.Find")
		return err
	}

	if market.ID == 0 {
		return nil
	}

	accounts, err := w.accountStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("accounts.All")
		return err
	}

	var deposited, borrowed uint64
	for _, account := range accounts {
		deposited += account.DepositedCollateralAmount
		borrowed += account.BorrowedAmount

		max := market.MaxBorrowable(account.DepositedCollateralAmount)
		if account.BorrowedAmount > max {
			log.WithFields(logrus.Fields{
				"user":     account.User,
				"borrowed": account.BorrowedAmount,
				"max":      max,
			}).Errorln("account over the collateral ratio")
		}
	}

	if market.CollateralAmount != deposited || market.BorrowedAmount != borrowed {
		log.WithFields(logrus.Fields{
			"market_collateral": market.CollateralAmount,
			"sum_deposited":     deposited,
			"market_borrowed":   market.BorrowedAmount,
			"sum_borrowed":      borrowed,
		}).Errorln("market aggregates drifted from account sums")
	}

	vault, err := w.tokenStore.Find(ctx, market.CollateralVault)
	if err != nil {
		log.WithError(err).Errorln("tokens.Find")
		return err
	}

	if vault.Balance < deposited {
		log.WithFields(logrus.Fields{
			"vault_balance": vault.Balance,
			"sum_deposited": deposited,
		}).Errorln("collateral vault cannot cover deposits")
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, time.Now().Unix()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
