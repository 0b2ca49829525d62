package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/excel"
)

// ReportService renders spreadsheet exports
type ReportService struct {
	stockRepo repository.StockRepository
	customers *CustomerService
}

// NewReportService creates a new report service
func NewReportService(stockRepo repository.StockRepository, customers *CustomerService) *ReportService {
	return &ReportService{
		stockRepo: stockRepo,
		customers: customers,
	}
}

const reportDateFormat = "2006-01-02"

// ExportStock writes every stock item with its value at cost
func (s *ReportService) ExportStock(ctx context.Context, w io.Writer) error {
	items, err := s.stockRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	sheet := excel.Sheet{
		Name:     "Stock",
		Headings: []string{"Warehouse", "SKU", "Product", "Quantity", "Min Stock", "Max Stock", "Status", "Unit Cost", "Value", "Last Updated"},
	}
	for _, item := range items {
		var warehouse, sku, product string
		cost := decimal.Zero
		if item.Warehouse != nil {
			warehouse = item.Warehouse.Name
		}
		if item.Product != nil {
			sku = item.Product.SKU
			product = item.Product.Name
			cost = item.Product.Cost
		}
		value := cost.Mul(decimal.NewFromInt(item.Quantity))
		sheet.Rows = append(sheet.Rows, excel.Row{
			warehouse, sku, product, item.Quantity, item.MinStock, item.MaxStock,
			item.Status.String(), cost.InexactFloat64(), value.InexactFloat64(),
			item.LastUpdated.Format(reportDateFormat),
		})
	}

	return excel.Write(w, sheet)
}

// ExportCustomerLedger writes a customer's statement, oldest line first
func (s *ReportService) ExportCustomerLedger(ctx context.Context, customerID uuid.UUID, w io.Writer) (string, error) {
	customer, entries, err := s.customers.Statement(ctx, customerID)
	if err != nil {
		return "", err
	}

	sheet := excel.Sheet{
		Name:     "Ledger",
		Headings: []string{"#", "Date", "Type", "Description", "Reference", "Debit", "Credit", "Balance"},
	}
	for _, e := range entries {
		reference := ""
		if e.Reference != nil {
			reference = *e.Reference
		}
		sheet.Rows = append(sheet.Rows, excel.Row{
			e.Sequence, e.Date.Format(reportDateFormat), e.Type.String(), e.Description, reference,
			e.Debit.InexactFloat64(), e.Credit.InexactFloat64(), e.Balance.InexactFloat64(),
		})
	}

	summary := excel.Sheet{
		Name:     "Summary",
		Headings: []string{"Customer", "Email", "Total Purchases", "Total Paid", "Balance"},
		Rows: []excel.Row{{
			customer.Name, customer.Email,
			customer.TotalPurchases.InexactFloat64(), customer.TotalPaid.InexactFloat64(), customer.Balance.InexactFloat64(),
		}},
	}

	return customer.Name, excel.Write(w, sheet, summary)
}
