package domain

const (
	StatusPending    = "Pending"
	StatusInProgress = "In progress"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusPartial    = "Partial"
	StatusCanceled   = "Canceled"
)

// FinalStatuses are never polled again by the refresher.
var FinalStatuses = []string{StatusCompleted, StatusPartial, StatusCanceled}

// CatalogService is one entry of the provider's service list. Rate is in USD per 1000.
type CatalogService struct {
	ServiceID int64
	Name      string
	Type      string
	Category  string
	Rate      float64
	Min       int64
	Max       int64
	Refill    bool
	Cancel    bool
}

type PricedService struct {
	CatalogService
	CoinsPer1000 float64
}

type OrderParams struct {
	ServiceID int64
	Link      string
	Quantity  int64
	Runs      int64
	Interval  int64
	Comments  string
}

type OrderStatus struct {
	OrderID    int64
	Status     string
	Charge     string
	StartCount string
	Remains    string
	Currency   string
	Error      string
}

type ProviderBalance struct {
	Amount   float64
	Currency string
}

type CancelResult struct {
	OrderID int64
	Error   string
}
