package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

type partyTotalsRow struct {
	Count          int64
	TotalPurchases decimal.Decimal
	TotalPaid      decimal.Decimal
	Balance        decimal.Decimal
}

func (r *dashboardRepository) partyTotals(ctx context.Context, model interface{}) (domainRepo.PartyTotals, error) {
	var row partyTotalsRow
	err := conn(ctx, r.db).Model(model).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(total_purchases), 0) AS total_purchases,
			COALESCE(SUM(total_paid), 0) AS total_paid,
			COALESCE(SUM(balance), 0) AS balance`).
		Scan(&row).Error
	if err != nil {
		return domainRepo.PartyTotals{}, err
	}
	return domainRepo.PartyTotals(row), nil
}

func (r *dashboardRepository) CustomerTotals(ctx context.Context) (domainRepo.PartyTotals, error) {
	return r.partyTotals(ctx, &entity.Customer{})
}

func (r *dashboardRepository) SupplierTotals(ctx context.Context) (domainRepo.PartyTotals, error) {
	return r.partyTotals(ctx, &entity.Supplier{})
}

func (r *dashboardRepository) SalesTotals(ctx context.Context) (domainRepo.SalesTotals, error) {
	var row struct {
		Count          int64
		Total          decimal.Decimal
		AmountPaid     decimal.Decimal
		AmountRefunded decimal.Decimal
	}
	err := conn(ctx, r.db).Model(&entity.Sale{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS total,
			COALESCE(SUM(amount_paid), 0) AS amount_paid,
			COALESCE(SUM(amount_refunded), 0) AS amount_refunded`).
		Scan(&row).Error
	if err != nil {
		return domainRepo.SalesTotals{}, err
	}
	return domainRepo.SalesTotals(row), nil
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *dashboardRepository) countByStatus(ctx context.Context, model interface{}) (map[string]int64, error) {
	var rows []statusCount
	err := conn(ctx, r.db).Model(model).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *dashboardRepository) StockCountsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &entity.StockItem{})
}

func (r *dashboardRepository) ManufactureCountsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &entity.ManufactureOrder{})
}

func (r *dashboardRepository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := conn(ctx, r.db).Raw(`
		SELECT COALESCE(SUM(s.quantity * p.cost), 0)
		FROM stock_items s
		JOIN products p ON p.id = s.product_id
		WHERE p.deleted_at IS NULL
	`).Scan(&value).Error
	return value, err
}

func (r *dashboardRepository) CountPendingTransfers(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Transfer{}).
		Where("status IN ?", []enum.TransferStatus{enum.TransferStatusPending, enum.TransferStatusInTransit}).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountPendingReturns(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.SaleReturn{}).
		Where("status = ?", enum.ReturnStatusPending).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) TopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			si.product_id AS product_id,
			MAX(si.product_name) AS product_name,
			COALESCE(SUM(si.quantity - si.returned_quantity), 0) AS quantity_sold,
			COALESCE(SUM((si.quantity - si.returned_quantity) * si.unit_price), 0) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.deleted_at IS NULL
		GROUP BY si.product_id
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
