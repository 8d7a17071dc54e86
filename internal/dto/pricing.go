package dto

// CalculateOrderCostRequestDTO keeps the wire name of the rate field; the value
// is the provider rate in USD per 1000 items.
type CalculateOrderCostRequestDTO struct {
	ProviderRateInUsdPerUnit *float64 `json:"providerRateInUsdPerUnit" validate:"required" example:"2.5"`
	Quantity                 *float64 `json:"quantity" validate:"required" example:"500"`
	ServiceID                *int64   `json:"serviceId" validate:"required" example:"1024"`
}

type CalculateOrderCostResponseDTO struct {
	Cost float64 `json:"cost" example:"93.75"`
}

type ServiceDTO struct {
	Service      int64   `json:"service" example:"1024"`
	Name         string  `json:"name" example:"Instagram Likes"`
	Type         string  `json:"type" example:"Default"`
	Category     string  `json:"category" example:"Instagram"`
	Rate         float64 `json:"rate" example:"2.5"`
	CoinsPer1000 float64 `json:"coinsPer1000" example:"187.5"`
	Min          int64   `json:"min" example:"10"`
	Max          int64   `json:"max" example:"10000"`
	Refill       bool    `json:"refill"`
	Cancel       bool    `json:"cancel"`
}
