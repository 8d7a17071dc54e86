package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCoinBalance is granted when a balance row is created lazily on first read.
// Users created by an admin start from zero instead.
const DefaultCoinBalance = 1000.00

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

type UserWithBalance struct {
	User
	Balance float64 `db:"coins"`
}

type CoinBalance struct {
	UserID    string    `db:"user_id"`
	Coins     float64   `db:"coins"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// PricingRule overrides the default markup for one provider service.
// CustomPrice wins over Markup when both are set.
type PricingRule struct {
	ServiceID   int64    `db:"service_id"`
	Markup      *float64 `db:"markup"`
	CustomPrice *float64 `db:"custom_price"`
}

type Order struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	OrderID     int64     `db:"order_id"`
	ServiceID   int64     `db:"service_id"`
	ServiceName string    `db:"service_name"`
	Link        string    `db:"link"`
	Quantity    int64     `db:"quantity"`
	CostCoins   float64   `db:"cost_coins"`
	Status      string    `db:"status"`
	Charge      string    `db:"charge"`
	StartCount  string    `db:"start_count"`
	Remains     string    `db:"remains"`
	Currency    string    `db:"currency"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type TxKind string

const (
	TxAdd        TxKind = "add"
	TxDeduct     TxKind = "deduct"
	TxTransfer   TxKind = "transfer"
	TxDeallocate TxKind = "deallocate"
	TxSync       TxKind = "sync"
	TxOrder      TxKind = "order"
	TxRefund     TxKind = "refund"
	TxRefill     TxKind = "refill"
)

// Memo describes why a balance moved; it ends up in coin_transactions.
type Memo struct {
	Kind        TxKind
	Description string
}

type CoinTransaction struct {
	ID          int64     `db:"id"`
	FromUserID  *string   `db:"from_user_id"`
	ToUserID    *string   `db:"to_user_id"`
	Amount      float64   `db:"amount"`
	Kind        TxKind    `db:"kind"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Allocation struct {
	AdminBalance float64
	UserBalance  float64
	Amount       float64
}

type ProviderSync struct {
	ProviderAmount   float64
	ProviderCurrency string
	Rate             float64
	LocalAmount      float64
}

type BalanceOverview struct {
	ProviderAmount   float64
	ProviderCurrency string
	ProviderCoins    float64
	TotalAllocated   float64
	Available        float64
}

type Refill struct {
	RefillID   int64
	Cost       float64
	NewBalance float64
}
