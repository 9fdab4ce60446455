package quota

import (
	"context"
	"errors"
	"testing"

	"creava/logger"
	"creava/models"
)

type fakeIdentity struct {
	err     error
	calls   int
	lastID  string
	lastVal int64
}

func (f *fakeIdentity) UpdateFreeUsage(_ context.Context, userID string, freeUsage int64) error {
	f.calls++
	f.lastID = userID
	f.lastVal = freeUsage
	return f.err
}

func TestCheck(t *testing.T) {
	guard := NewGuard(&fakeIdentity{}, logger.NewNop())

	cases := []struct {
		name    string
		account models.Account
		class   OperationClass
		want    error
	}{
		{"free below limit metered", models.Account{Plan: models.PLAN_FREE, FreeUsage: 9}, OperationMetered, nil},
		{"free at limit metered", models.Account{Plan: models.PLAN_FREE, FreeUsage: 10}, OperationMetered, ErrLimitReached},
		{"free above limit metered", models.Account{Plan: models.PLAN_FREE, FreeUsage: 42}, OperationMetered, ErrLimitReached},
		{"premium metered always allowed", models.Account{Plan: models.PLAN_PREMIUM, FreeUsage: 42}, OperationMetered, nil},
		{"free premium-only denied", models.Account{Plan: models.PLAN_FREE, FreeUsage: 0}, OperationPremiumOnly, ErrPremiumRequired},
		{"premium premium-only allowed", models.Account{Plan: models.PLAN_PREMIUM}, OperationPremiumOnly, nil},
	}

	for _, tc := range cases {
		if got := guard.Check(tc.account, tc.class); !errors.Is(got, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCheckPremiumOnlyIgnoresCounter(t *testing.T) {
	guard := NewGuard(&fakeIdentity{}, logger.NewNop())

	// A premium account far past the metered limit is still allowed.
	account := models.Account{Plan: models.PLAN_PREMIUM, FreeUsage: FREE_OPERATION_LIMIT * 3}
	if err := guard.Check(account, OperationPremiumOnly); err != nil {
		t.Fatalf("unexpected denial: %v", err)
	}
}

func TestCommitIncrementsFreeAccounts(t *testing.T) {
	identity := &fakeIdentity{}
	guard := NewGuard(identity, logger.NewNop())

	guard.Commit(context.Background(), models.Account{ID: "u1", Plan: models.PLAN_FREE, FreeUsage: 4})

	if identity.calls != 1 {
		t.Fatalf("expected one identity write, got %d", identity.calls)
	}
	if identity.lastID != "u1" || identity.lastVal != 5 {
		t.Fatalf("expected u1 -> 5, got %s -> %d", identity.lastID, identity.lastVal)
	}
}

func TestCommitSkipsPremium(t *testing.T) {
	identity := &fakeIdentity{}
	guard := NewGuard(identity, logger.NewNop())

	guard.Commit(context.Background(), models.Account{ID: "u1", Plan: models.PLAN_PREMIUM, FreeUsage: 4})

	if identity.calls != 0 {
		t.Fatalf("premium commit must be a no-op, got %d writes", identity.calls)
	}
}

func TestCommitSwallowsIdentityErrors(t *testing.T) {
	identity := &fakeIdentity{err: errors.New("provider down")}
	guard := NewGuard(identity, logger.NewNop())

	// Must not panic or surface anything; the failure is logged only.
	guard.Commit(context.Background(), models.Account{ID: "u1", Plan: models.PLAN_FREE, FreeUsage: 4})
}
