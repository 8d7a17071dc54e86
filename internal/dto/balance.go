package dto

import "time"

type BalanceResponseDTO struct {
	Balance float64 `json:"balance" example:"1000"`
}

type BalanceUpdateRequestDTO struct {
	Amount *float64 `json:"amount" validate:"required" example:"100"`
	Action string   `json:"action" validate:"omitempty,oneof=add deduct" example:"add"`
}

type CoinTransactionDTO struct {
	ID          int64     `json:"id" example:"1"`
	FromUserID  *string   `json:"fromUserId,omitempty"`
	ToUserID    *string   `json:"toUserId,omitempty"`
	Amount      float64   `json:"amount" example:"300"`
	Kind        string    `json:"kind" example:"transfer"`
	Description string    `json:"description" example:"allocation from admin"`
	CreatedAt   time.Time `json:"createdAt" example:"2020-12-09T16:09:57+03:00"`
}
