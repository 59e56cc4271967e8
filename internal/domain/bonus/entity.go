// internal/domain/bonus/entity.go
package bonus

import "time"

// Account is a user's loyalty ("steps") balance. 1 step = 1 currency unit.
// The pricing engine only ever reads the balance as a cap; mutations happen
// through ledger entries after a purchase is confirmed.
type Account struct {
	UserID        int64 `json:"user_id" db:"user_id"`
	Balance       int64 `json:"balance" db:"balance"`
	CashbackLevel int   `json:"cashback_level" db:"cashback_level"`

	LifetimeEarned int64 `json:"lifetime_earned" db:"lifetime_earned"`
	LifetimeSpent  int64 `json:"lifetime_spent" db:"lifetime_spent"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type EntryKind string

const (
	EntryKindAccrual    EntryKind = "accrual"
	EntryKindRedemption EntryKind = "redemption"
)

// LedgerEntry records one balance movement. Amount is positive for accruals
// and negative for redemptions.
type LedgerEntry struct {
	ID                int64     `json:"id" db:"id"`
	UserID            int64     `json:"user_id" db:"user_id"`
	PurchaseReference string    `json:"purchase_reference" db:"purchase_reference"`
	Kind              EntryKind `json:"kind" db:"kind"`
	Amount            int64     `json:"amount" db:"amount"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
