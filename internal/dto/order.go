package dto

type CreateOrderRequestDTO struct {
	ServiceID int64  `json:"serviceId" validate:"required,gt=0" example:"1024"`
	Link      string `json:"link" validate:"required,url" example:"https://instagram.com/p/abc"`
	Quantity  int64  `json:"quantity" validate:"gte=0" example:"500"`
	Runs      int64  `json:"runs,omitempty" validate:"gte=0"`
	Interval  int64  `json:"interval,omitempty" validate:"gte=0"`
	Comments  string `json:"comments,omitempty"`
}

type OrderResponseDTO struct {
	ID          int64   `json:"id" example:"1"`
	OrderID     int64   `json:"orderId" example:"23501"`
	ServiceID   int64   `json:"serviceId" example:"1024"`
	ServiceName string  `json:"serviceName" example:"Instagram Likes"`
	Link        string  `json:"link" example:"https://instagram.com/p/abc"`
	Quantity    int64   `json:"quantity" example:"500"`
	CostCoins   float64 `json:"costCoins" example:"93.75"`
	Status      string  `json:"status" example:"Pending"`
	Charge      string  `json:"charge,omitempty" example:"0.27819"`
	StartCount  string  `json:"startCount,omitempty" example:"3572"`
	Remains     string  `json:"remains,omitempty" example:"157"`
	Currency    string  `json:"currency,omitempty" example:"USD"`
	CreatedAt   string  `json:"createdAt" example:"2020-12-09T16:09:57+03:00"`
}

type OrdersResponseDTO struct {
	Orders []OrderResponseDTO `json:"orders"`
}

type RefillResponseDTO struct {
	Success    bool    `json:"success"`
	Refill     int64   `json:"refill" example:"1"`
	Cost       float64 `json:"cost" example:"93.75"`
	NewBalance float64 `json:"newBalance" example:"906.25"`
}

type CancelRequestDTO struct {
	OrderIDs []int64 `json:"orderIds" validate:"required,min=1,dive,gt=0"`
}

type CancelResultDTO struct {
	OrderID int64  `json:"orderId"`
	Error   string `json:"error,omitempty"`
}
