package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"crmlite/internal/chart"
	"crmlite/internal/domain"
	"crmlite/internal/repos"
)

// ChartRenderer persists a chart under name and returns where it can be fetched.
type ChartRenderer interface {
	Render(ctx context.Context, name string, c chart.Chart) (string, error)
}

// AdminView is the global dashboard.
type AdminView struct {
	Period     domain.Period
	Sales      map[string]decimal.Decimal // sale value per product
	TotalSales decimal.Decimal
	UnitsSold  map[string]int
	Balance    map[string]int // inflow minus outflow over the period
	Stock      map[string]int // Balance plus initial stock
	Alerts     []domain.Alert
	Charts     map[string]string
}

// PartyView is the dashboard of a supplier or a customer.
type PartyView struct {
	Party  domain.Record
	Role   domain.Role
	Period domain.Period
	Units  map[string]int
	Chart  string
}

type DashboardService struct {
	Users     *repos.UserRepo
	Activity  *ActivityService
	Inventory *InventoryService
	Charts    ChartRenderer
}

func NewDashboardService(users *repos.UserRepo, act *ActivityService, inv *InventoryService, charts ChartRenderer) *DashboardService {
	return &DashboardService{Users: users, Activity: act, Inventory: inv, Charts: charts}
}

// Identify loads the user record for id and classifies its role. An unknown
// id yields RoleNone with an empty record.
func (s *DashboardService) Identify(ctx context.Context, id string) (domain.Role, domain.Record, error) {
	rec, _, err := s.Users.Fetch(ctx, id)
	if err != nil {
		return domain.RoleNone, rec, err
	}
	return domain.ClassifyRole(rec), rec, nil
}

// AdminData computes the admin dashboard figures without drawing charts.
func (s *DashboardService) AdminData(ctx context.Context) (AdminView, error) {
	var v AdminView
	var err error
	if v.Sales, err = s.Activity.ValueSums(ctx, domain.DirectionOut); err != nil {
		return v, err
	}
	v.TotalSales = decimal.Zero
	for _, amount := range v.Sales {
		v.TotalSales = v.TotalSales.Add(amount)
	}
	if v.UnitsSold, err = s.Activity.UnitCounts(ctx, "", domain.DirectionOut); err != nil {
		return v, err
	}
	inflow, err := s.Activity.UnitCounts(ctx, "", domain.DirectionIn)
	if err != nil {
		return v, err
	}
	v.Balance = NetBalance(v.UnitsSold, inflow)

	products, err := s.Inventory.ProductStocks(ctx)
	if err != nil {
		return v, err
	}
	v.Stock = ApplyInitialStock(v.Balance, products)
	v.Alerts = BelowThreshold(v.Stock, products)

	if v.Period, err = s.Activity.PeriodBounds(ctx); err != nil {
		return v, err
	}
	return v, nil
}

// AdminView computes the admin dashboard and renders its three charts.
func (s *DashboardService) AdminView(ctx context.Context) (AdminView, error) {
	v, err := s.AdminData(ctx)
	if err != nil {
		return v, err
	}
	sales := make(map[string]float64, len(v.Sales))
	for k, amount := range v.Sales {
		sales[k] = amount.InexactFloat64()
	}
	v.Charts = map[string]string{}
	for _, c := range []struct {
		key, name string
		chart     chart.Chart
	}{
		{"sales", "graph-admin-sales", chart.Chart{Title: "Sales per product", XLabel: "Sales", YLabel: "Product", Data: sales}},
		{"units", "graph-admin-units-sold", chart.Chart{Title: "Units sold", XLabel: "Units", YLabel: "Product", Data: toFloat(v.UnitsSold)}},
		{"balance", "graph-admin-inventory", chart.Chart{Title: "Product balance", XLabel: "Inputs minus outputs", YLabel: "Product", Data: toFloat(v.Balance)}},
	} {
		url, err := s.Charts.Render(ctx, c.name, c.chart)
		if err != nil {
			return v, err
		}
		v.Charts[c.key] = url
	}
	return v, nil
}

// SupplierView charts the units supplied by the given user. Initial stock is
// not applied here.
func (s *DashboardService) SupplierView(ctx context.Context, supplier domain.Record) (PartyView, error) {
	return s.partyView(ctx, supplier, domain.RoleSupplier, domain.DirectionIn,
		"graph-supplier", chart.Chart{Title: "Supplies per product", XLabel: "Supply", YLabel: "Product"})
}

// CustomerView charts the units sold to the given user.
func (s *DashboardService) CustomerView(ctx context.Context, customer domain.Record) (PartyView, error) {
	return s.partyView(ctx, customer, domain.RoleCustomer, domain.DirectionOut,
		"graph-customer", chart.Chart{Title: "Sales per product", XLabel: "Sales", YLabel: "Product"})
}

func (s *DashboardService) partyView(ctx context.Context, party domain.Record, role domain.Role, dir, name string, c chart.Chart) (PartyView, error) {
	v := PartyView{Party: party, Role: role}
	if party.ID() == "" {
		return v, fmt.Errorf("%s view: %w", role, domain.ErrNotFound)
	}
	var err error
	if v.Units, err = s.Activity.UnitCounts(ctx, party.ID(), dir); err != nil {
		return v, err
	}
	c.Data = toFloat(v.Units)
	if v.Chart, err = s.Charts.Render(ctx, name, c); err != nil {
		return v, err
	}
	if v.Period, err = s.Activity.PeriodBounds(ctx); err != nil {
		return v, err
	}
	return v, nil
}

func toFloat(m map[string]int) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, n := range m {
		out[k] = float64(n)
	}
	return out
}
