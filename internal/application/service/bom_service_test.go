package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

type bomFixture struct {
	env        *testEnv
	svc        *BOMService
	final      *entity.Product
	components []*entity.Product
}

// newBOMFixture stocks a laptop assembly: a board and three cheaper parts
func newBOMFixture(t *testing.T) *bomFixture {
	env := newTestEnv(t)
	return &bomFixture{
		env:   env,
		svc:   NewBOMService(env.tx, env.boms, env.orders, env.products, env.stock),
		final: env.product(t, "LAPTOP", 350000, 0, 0),
		components: []*entity.Product{
			env.product(t, "BOARD", 0, 280000, 0),
			env.product(t, "KEYS", 0, 1000, 0),
			env.product(t, "FAN", 0, 1500, 0),
			env.product(t, "CABLE", 0, 800, 0),
		},
	}
}

func (f *bomFixture) inputs(qty int64) []ComponentInput {
	out := make([]ComponentInput, len(f.components))
	for i, p := range f.components {
		out[i] = ComponentInput{ProductID: p.ID, QuantityRequired: qty}
	}
	return out
}

func TestCreateBOMRollsUpCost(t *testing.T) {
	f := newBOMFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBOM(ctx, &CreateBOMInput{
		Code:           "bom-laptop",
		Name:           "Laptop assembly",
		FinalProductID: f.final.ID,
		Components:     f.inputs(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "BOM-LAPTOP", b.Code)
	assert.Equal(t, enum.RecordStatusActive, b.Status)
	assert.True(t, b.TotalCost.Equal(dec("283300")), "total cost %s", b.TotalCost)
	require.Len(t, b.Components, 4)
	for _, c := range b.Components {
		assert.True(t, c.TotalCost.Equal(c.UnitCost), "single unit line costs its unit cost")
	}
}

func TestUpdateBOMRecomputesCostOnEveryEdit(t *testing.T) {
	f := newBOMFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBOM(ctx, &CreateBOMInput{
		Code:           "LAP",
		Name:           "Laptop",
		FinalProductID: f.final.ID,
		Components:     f.inputs(1),
	})
	require.NoError(t, err)

	// drop the cable, double the fans, override the board price
	edited := []ComponentInput{
		{ProductID: f.components[0].ID, QuantityRequired: 1, UnitCost: decPtr("250000")},
		{ProductID: f.components[1].ID, QuantityRequired: 1},
		{ProductID: f.components[2].ID, QuantityRequired: 2},
	}
	b, err = f.svc.UpdateBOM(ctx, &UpdateBOMInput{ID: b.ID, Components: edited})
	require.NoError(t, err)
	require.Len(t, b.Components, 3)
	assert.True(t, b.TotalCost.Equal(dec("254000")), "total cost %s", b.TotalCost)

	name := "Laptop v2"
	b, err = f.svc.UpdateBOM(ctx, &UpdateBOMInput{ID: b.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Laptop v2", b.Name)
	assert.Len(t, b.Components, 3, "components survive an update without a list")
	assert.True(t, b.TotalCost.Equal(dec("254000")))
}

func TestCreateBOMRejectsBadComponents(t *testing.T) {
	f := newBOMFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		components []ComponentInput
	}{
		{name: "empty", components: nil},
		{name: "consumes its own product", components: []ComponentInput{{ProductID: f.final.ID, QuantityRequired: 1}}},
		{name: "duplicate component", components: []ComponentInput{
			{ProductID: f.components[0].ID, QuantityRequired: 1},
			{ProductID: f.components[0].ID, QuantityRequired: 2},
		}},
		{name: "zero quantity", components: []ComponentInput{{ProductID: f.components[0].ID, QuantityRequired: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateBOM(ctx, &CreateBOMInput{
				Code:           "BAD",
				Name:           "Bad",
				FinalProductID: f.final.ID,
				Components:     tt.components,
			})
			requireStatus(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestCheckAvailabilityReportsShortages(t *testing.T) {
	f := newBOMFixture(t)
	ctx := context.Background()

	north := f.env.warehouse(t, "NORTH")
	south := f.env.warehouse(t, "SOUTH")
	for _, p := range f.components {
		f.env.stockItem(t, p, north, 2)
	}
	f.env.stockItem(t, f.components[0], south, 1)

	b, err := f.svc.CreateBOM(ctx, &CreateBOMInput{
		Code:           "LAP",
		Name:           "Laptop",
		FinalProductID: f.final.ID,
		Components:     f.inputs(1),
	})
	require.NoError(t, err)

	avail, err := f.svc.CheckAvailability(ctx, b.ID, 3, nil)
	require.NoError(t, err)
	assert.False(t, avail.CanProduce)
	require.Len(t, avail.Shortages, 3)
	for _, s := range avail.Shortages {
		assert.Equal(t, int64(3), s.Required)
		assert.Equal(t, int64(2), s.Available)
	}

	stored, err := f.svc.GetBOM(ctx, b.ID)
	require.NoError(t, err)
	for _, c := range stored.Components {
		if c.ProductID == f.components[0].ID {
			assert.Equal(t, int64(3), c.AvailableStock, "snapshot sums every warehouse")
		}
	}

	avail, err = f.svc.CheckAvailability(ctx, b.ID, 2, &north.ID)
	require.NoError(t, err)
	assert.True(t, avail.CanProduce)
	assert.Empty(t, avail.Shortages)

	_, err = f.svc.CheckAvailability(ctx, b.ID, 0, nil)
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

func TestBOMComponentsKeepEntryOrder(t *testing.T) {
	f := newBOMFixture(t)
	ctx := context.Background()

	b, err := f.svc.CreateBOM(ctx, &CreateBOMInput{
		Code:           "LAP",
		Name:           "Laptop",
		FinalProductID: f.final.ID,
		Components:     f.inputs(1),
	})
	require.NoError(t, err)

	names := func(b *entity.BOM) []string {
		out := make([]string, len(b.Components))
		for i, c := range b.Components {
			out[i] = c.ProductName
		}
		return out
	}
	assert.Equal(t, []string{"Product BOARD", "Product KEYS", "Product FAN", "Product CABLE"}, names(b))

	reversed := []ComponentInput{
		{ProductID: f.components[3].ID, QuantityRequired: 1},
		{ProductID: f.components[2].ID, QuantityRequired: 1},
		{ProductID: f.components[1].ID, QuantityRequired: 1},
		{ProductID: f.components[0].ID, QuantityRequired: 1},
	}
	for i := 0; i < 3; i++ {
		_, err = f.svc.UpdateBOM(ctx, &UpdateBOMInput{ID: b.ID, Components: reversed})
		require.NoError(t, err)

		stored, err := f.svc.GetBOM(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Product CABLE", "Product FAN", "Product KEYS", "Product BOARD"}, names(stored))
		for i, c := range stored.Components {
			assert.Equal(t, i, c.Position)
		}
	}

	list, err := f.svc.ListBOMs(ctx, &pagination.PaginationParams{Page: 1, PerPage: 10}, "", "")
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, []string{"Product CABLE", "Product FAN", "Product KEYS", "Product BOARD"}, names(&list.Items[0]))
}
