package dto

type CoinMovementRequestDTO struct {
	UserID string   `json:"userId" validate:"required,uuid" example:"8a1b3b0e-3f62-4a0e-9a53-7ad1b3d1f0c9"`
	Amount *float64 `json:"amount" validate:"required" example:"300"`
}

type AllocateResponseDTO struct {
	Success           bool    `json:"success"`
	AdminBalance      float64 `json:"adminBalance" example:"700"`
	UserBalance       float64 `json:"userBalance" example:"300"`
	AmountTransferred float64 `json:"amountTransferred" example:"300"`
}

type DeallocateResponseDTO struct {
	Success           bool    `json:"success"`
	AdminBalance      float64 `json:"adminBalance" example:"700"`
	UserBalance       float64 `json:"userBalance" example:"0"`
	AmountDeallocated float64 `json:"amountDeallocated" example:"300"`
}

type InsufficientBalanceDTO struct {
	Error          string  `json:"error"`
	AdminBalance   float64 `json:"adminBalance,omitempty"`
	CurrentBalance float64 `json:"currentBalance,omitempty"`
}

type MarkupDTO struct {
	Success bool    `json:"success"`
	Markup  float64 `json:"markup" example:"1.5"`
	Message string  `json:"message,omitempty"`
}

type SetMarkupRequestDTO struct {
	Markup float64 `json:"markup" validate:"gt=0" example:"1.5"`
}

type RateDTO struct {
	Success bool    `json:"success"`
	Rate    float64 `json:"rate" example:"50"`
	Message string  `json:"message,omitempty"`
}

type SetRateRequestDTO struct {
	Rate float64 `json:"rate" validate:"gt=0" example:"50"`
}

type ProviderAmountDTO struct {
	Amount   float64 `json:"amount" example:"100.84"`
	Currency string  `json:"currency" example:"USD"`
}

type SyncProviderBalanceResponseDTO struct {
	Success         bool              `json:"success"`
	ProviderBalance ProviderAmountDTO `json:"providerBalance"`
	ConversionRate  float64           `json:"conversionRate" example:"50"`
	AdminCoins      float64           `json:"adminCoins" example:"5042"`
	Message         string            `json:"message"`
}

type BalanceOverviewDTO struct {
	ProviderBalance        ProviderAmountDTO `json:"providerBalance"`
	ProviderBalanceInCoins float64           `json:"providerBalanceInCoins" example:"5042"`
	TotalAllocated         float64           `json:"totalAllocated" example:"1200"`
	AvailableToAllocate    float64           `json:"availableToAllocate" example:"3842"`
}

type CreateUserRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"user@smmpanel.com"`
	Username string `json:"username" validate:"required,min=3,max=50" example:"user1"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
}

type CreateUserResponseDTO struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

type UserDTO struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	IsActive bool    `json:"isActive"`
	Balance  float64 `json:"balance"`
}

type UsersResponseDTO struct {
	Users []UserDTO `json:"users"`
}

type UpdateUserStatusRequestDTO struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type PricingRuleDTO struct {
	ServiceID   int64    `json:"serviceId" example:"1024"`
	Markup      *float64 `json:"markup,omitempty" validate:"omitempty,gt=0" example:"2"`
	CustomPrice *float64 `json:"customPrice,omitempty" validate:"omitempty,gte=0" example:"75"`
}

type PricingRulesResponseDTO struct {
	Rules []PricingRuleDTO `json:"rules"`
}
