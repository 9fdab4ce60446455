package models

/************************************************
/**** MARK: SUBSCRIPTION PLANS ****/
/************************************************/
const PLAN_FREE = "free"
const PLAN_PREMIUM = "premium"

// Account is the authenticated caller as reported by the identity provider.
// Everything here is read-only to this service: the plan and the free-usage
// counter live in the provider's user metadata and arrive as token claims.
type Account struct {
	ID        string
	Plan      string
	FreeUsage int64
}

func (a Account) IsPremium() bool {
	return a.Plan == PLAN_PREMIUM
}
