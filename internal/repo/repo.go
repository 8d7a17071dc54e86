package repo

import (
	"github.com/GlebRadaev/smmpanel/internal/pg"
	"github.com/GlebRadaev/smmpanel/internal/provider"
	balancerepo "github.com/GlebRadaev/smmpanel/internal/repo/balance-repo"
	orderrepo "github.com/GlebRadaev/smmpanel/internal/repo/order-repo"
	pricingrepo "github.com/GlebRadaev/smmpanel/internal/repo/pricing-repo"
	settingrepo "github.com/GlebRadaev/smmpanel/internal/repo/setting-repo"
	transactionrepo "github.com/GlebRadaev/smmpanel/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/smmpanel/internal/repo/user-repo"
	"github.com/GlebRadaev/smmpanel/internal/service/authservice"
	"github.com/GlebRadaev/smmpanel/internal/service/balanceservice"
	"github.com/GlebRadaev/smmpanel/internal/service/orderservice"
	"github.com/GlebRadaev/smmpanel/internal/service/pricingservice"
)

// OrderRepo serves both the order service and the background refresher.
type OrderRepo interface {
	orderservice.Repo
	provider.OrderRepo
}

type Repositories struct {
	UserRepo    authservice.Repo
	OrderRepo   OrderRepo
	BalanceRepo balanceservice.BalanceRepo
	History     balanceservice.HistoryRepo
	Settings    pricingservice.SettingRepo
	Pricing     pricingservice.RuleRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn, txManager),
		OrderRepo:   orderrepo.New(conn, txManager),
		BalanceRepo: balancerepo.New(conn, txManager),
		History:     transactionrepo.New(conn),
		Settings:    settingrepo.New(conn),
		Pricing:     pricingrepo.New(conn),
	}
}
