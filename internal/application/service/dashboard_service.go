package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// PartySummary is the aggregate account of customers or suppliers
type PartySummary struct {
	Count          int64           `json:"count"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Balance        decimal.Decimal `json:"balance"`
}

// SalesSummary is the aggregate of all invoices
type SalesSummary struct {
	Count          int64           `json:"count"`
	Total          decimal.Decimal `json:"total"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	AmountRefunded decimal.Decimal `json:"amount_refunded"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// StockSummary counts stock items per status and values the inventory at cost
type StockSummary struct {
	InStock        int64           `json:"in_stock"`
	LowStock       int64           `json:"low_stock"`
	OutOfStock     int64           `json:"out_of_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// TopProduct represents a best selling product
type TopProduct struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Customers          PartySummary     `json:"customers"`
	Suppliers          PartySummary     `json:"suppliers"`
	Sales              SalesSummary     `json:"sales"`
	Stock              StockSummary     `json:"stock"`
	ManufactureOrders  map[string]int64 `json:"manufacture_orders"`
	PendingTransfers   int64            `json:"pending_transfers"`
	PendingReturns     int64            `json:"pending_returns"`
	TopSellingProducts []TopProduct     `json:"top_selling_products"`
}

const topProductsLimit = 5

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	customers, err := s.dashboardRepo.CustomerTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Customers = PartySummary(customers)

	suppliers, err := s.dashboardRepo.SupplierTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Suppliers = PartySummary(suppliers)

	sales, err := s.dashboardRepo.SalesTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Sales = SalesSummary{
		Count:          sales.Count,
		Total:          sales.Total,
		AmountPaid:     sales.AmountPaid,
		AmountRefunded: sales.AmountRefunded,
		Outstanding:    sales.Total.Sub(sales.AmountPaid),
	}

	counts, err := s.dashboardRepo.StockCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.dashboardRepo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	stats.Stock = StockSummary{
		InStock:        counts[enum.StockStatusInStock.String()],
		LowStock:       counts[enum.StockStatusLowStock.String()],
		OutOfStock:     counts[enum.StockStatusOutOfStock.String()],
		InventoryValue: value,
	}

	orders, err := s.dashboardRepo.ManufactureCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.ManufactureOrders = make(map[string]int64, 4)
	for _, status := range []enum.ManufactureStatus{
		enum.ManufactureStatusPending, enum.ManufactureStatusInProgress,
		enum.ManufactureStatusCompleted, enum.ManufactureStatusCancelled,
	} {
		stats.ManufactureOrders[status.String()] = orders[status.String()]
	}

	if stats.PendingTransfers, err = s.dashboardRepo.CountPendingTransfers(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReturns, err = s.dashboardRepo.CountPendingReturns(ctx); err != nil {
		return nil, err
	}

	top, err := s.dashboardRepo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, err
	}
	stats.TopSellingProducts = make([]TopProduct, 0, len(top))
	for _, p := range top {
		stats.TopSellingProducts = append(stats.TopSellingProducts, TopProduct{
			ProductID:    p.ProductID.String(),
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		})
	}

	return stats, nil
}
