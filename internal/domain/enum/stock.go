package enum

// StockStatus classifies a stock item by its quantity on hand.
// It is always derived from quantity and the item's minimum, never set directly.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

func (s StockStatus) String() string {
	return string(s)
}

func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// AdjustmentType is the kind of manual stock correction
type AdjustmentType string

const (
	AdjustmentTypeAdd    AdjustmentType = "add"
	AdjustmentTypeRemove AdjustmentType = "remove"
	AdjustmentTypeSet    AdjustmentType = "set"
)

func (t AdjustmentType) String() string {
	return string(t)
}

func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeAdd, AdjustmentTypeRemove, AdjustmentTypeSet:
		return true
	}
	return false
}
