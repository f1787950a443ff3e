package mockgateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/pkg/config"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

func TestSeedCatalogIsValid(t *testing.T) {
	valid, rejected := catalog.ValidateProducts(SeedProducts())
	assert.Len(t, valid, 6)
	assert.Empty(t, rejected)
	assert.Len(t, SeedBanners(), 3)
	assert.Len(t, SeedPaymentMethods(), 2)
}

func TestLatenciesFromConfig(t *testing.T) {
	cfg := config.GatewayConfig{
		ProductsLatency:       800 * time.Millisecond,
		ProductByIDLatency:    500 * time.Millisecond,
		SearchLatency:         600 * time.Millisecond,
		BannersLatency:        400 * time.Millisecond,
		PaymentMethodsLatency: 300 * time.Millisecond,
		PlaceOrderLatency:     1500 * time.Millisecond,
	}
	l := LatenciesFromConfig(cfg)
	assert.Equal(t, 800*time.Millisecond, l.forOperation(catalog.OpFetchAllProducts))
	assert.Equal(t, 600*time.Millisecond, l.forOperation(catalog.OpSearchProducts))
	assert.Equal(t, 1500*time.Millisecond, l.forOperation(catalog.OpPlaceOrder))
}

func TestFetchProductByID(t *testing.T) {
	gw := New(Latencies{})

	p, err := gw.FetchProductByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Laptop Stand Aluminum", p.Name)

	_, err = gw.FetchProductByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSearchProductsMatchesNameDescriptionAndCategory(t *testing.T) {
	gw := New(Latencies{})

	byName, err := gw.SearchProducts(context.Background(), "WIRELESS")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "5"}, ids(byName))

	byCategory, err := gw.SearchProducts(context.Background(), "accessories")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "5", "6"}, ids(byCategory))

	none, err := gw.SearchProducts(context.Background(), "tractor")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPlaceOrderRecordsRequest(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	gw := New(Latencies{}, WithNow(func() time.Time { return fixed }))

	conf, err := gw.PlaceOrder(context.Background(), catalog.OrderRequest{PaymentMethodID: "1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(conf.OrderID, "ORD-"))
	assert.Equal(t, fixed, conf.PlacedAt)
	require.Len(t, gw.Orders(), 1)
	assert.Equal(t, "1", gw.Orders()[0].PaymentMethodID)
}

func TestSetFault(t *testing.T) {
	gw := New(Latencies{})
	boom := errors.New("boom")

	gw.SetFault(catalog.OpFetchBanners, boom)
	_, err := gw.FetchBanners(context.Background())
	assert.ErrorIs(t, err, boom)

	gw.SetFault(catalog.OpFetchBanners, nil)
	banners, err := gw.FetchBanners(context.Background())
	require.NoError(t, err)
	assert.Len(t, banners, 3)
}

func TestLatencyHonoursContext(t *testing.T) {
	gw := New(Latencies{Products: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gw.FetchAllProducts(ctx)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	gw := New(Latencies{})
	first, err := gw.FetchAllProducts(context.Background())
	require.NoError(t, err)
	first[0] = catalog.Product{ID: "mutated"}

	second, err := gw.FetchAllProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", second[0].ID)
}

func ids(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
