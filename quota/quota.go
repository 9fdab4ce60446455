package quota

import (
	"context"
	"errors"

	"creava/logger"
	"creava/models"
)

// FREE_OPERATION_LIMIT is how many metered operations a free account gets.
// There is no rollover here; the identity provider owns the counter and any
// reset policy.
const FREE_OPERATION_LIMIT = 10

/************************************************
/**** MARK: OPERATION CLASSES ****/
/************************************************/
type OperationClass int

const (
	// OperationMetered counts against the free-tier limit (premium is
	// unconditional).
	OperationMetered OperationClass = iota
	// OperationPremiumOnly is gated purely on plan; the counter is never
	// consulted.
	OperationPremiumOnly
)

// Deny reasons. These are normal negative results, not faults; the messages
// are user-facing.
var (
	ErrLimitReached    = errors.New("Limit reached, Upgrade to continue.")
	ErrPremiumRequired = errors.New("This feature is only available for premium subscriptions.")
)

// IdentityClient persists the incremented free-usage counter against the
// external identity provider. Implemented in tools, faked in tests.
type IdentityClient interface {
	UpdateFreeUsage(ctx context.Context, userID string, freeUsage int64) error
}

// Guard decides whether an operation may run for an account and records the
// usage once it fully succeeded.
type Guard struct {
	identity IdentityClient
	log      *logger.Logger
}

func NewGuard(identity IdentityClient, log *logger.Logger) *Guard {
	return &Guard{identity: identity, log: log}
}

// Check returns nil when the account may run an operation of the given
// class, or one of the deny reasons. It never performs I/O.
func (g *Guard) Check(account models.Account, class OperationClass) error {
	switch class {
	case OperationPremiumOnly:
		if !account.IsPremium() {
			return ErrPremiumRequired
		}
		return nil
	default:
		if account.IsPremium() {
			return nil
		}
		if account.FreeUsage >= FREE_OPERATION_LIMIT {
			return ErrLimitReached
		}
		return nil
	}
}

// Commit records one unit of usage for a free account. Call it only after
// the provider call succeeded AND the creation row is persisted: earlier
// would let a race duplicate the grant, and a failed persistence path must
// not cost the user a unit. The identity write is external with no
// atomicity against the store, so the increment is at-most-once: a failure
// here is logged and swallowed, never surfaced as a request failure.
func (g *Guard) Commit(ctx context.Context, account models.Account) {
	if account.IsPremium() {
		return
	}
	if err := g.identity.UpdateFreeUsage(ctx, account.ID, account.FreeUsage+1); err != nil {
		g.log.Error("quota commit failed", "user_id", account.ID, "error", err)
	}
}
