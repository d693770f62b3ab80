package services

import (
	"context"

	"crmlite/internal/domain"
	"crmlite/internal/repos"
)

type InventoryService struct {
	Products *repos.ProductRepo
}

func NewInventoryService(products *repos.ProductRepo) *InventoryService {
	return &InventoryService{Products: products}
}

// ProductStocks loads the stock settings of every product.
func (s *InventoryService) ProductStocks(ctx context.Context) ([]domain.ProductStock, error) {
	return s.Products.Stocks(ctx)
}

// NetBalance returns inflow minus outflow per product; a product missing on
// one side counts 0 there.
func NetBalance(outflow, inflow map[string]int) map[string]int {
	out := make(map[string]int, len(outflow)+len(inflow))
	for name, n := range inflow {
		out[name] += n
	}
	for name, n := range outflow {
		out[name] -= n
	}
	return out
}

// ApplyInitialStock adds each product's initial stock to its balance entry.
// balance is not modified.
func ApplyInitialStock(balance map[string]int, products []domain.ProductStock) map[string]int {
	out := make(map[string]int, len(balance)+len(products))
	for name, n := range balance {
		out[name] = n
	}
	for _, p := range products {
		out[p.Name] += p.InitialStock
	}
	return out
}

// BelowThreshold lists the products whose balance is under their minimum
// stock, in the order of products.
func BelowThreshold(balance map[string]int, products []domain.ProductStock) []domain.Alert {
	alerts := []domain.Alert{}
	for _, p := range products {
		stock, ok := balance[p.Name]
		if !ok {
			continue
		}
		if stock < p.MinStock {
			alerts = append(alerts, domain.Alert{Name: p.Name, Location: p.Location, MinStock: p.MinStock, Balance: stock})
		}
	}
	return alerts
}
