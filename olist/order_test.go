package olist

import (
	"lakegen/gen"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGen(seed int64, badRate float64) *olistGen {
	cfg := gen.GeneratorConfig{
		Seed:        seed,
		BadDataRate: badRate,
		Customers:   gen.Range{Min: 100, Max: 100},
		Products:    gen.Range{Min: 50, Max: 50},
		Sellers:     gen.Range{Min: 20, Max: 20},
		Orders:      gen.Range{Min: 500, Max: 500},
		CdcBatches:  2,
		CdcChanges:  gen.Range{Min: 10, Max: 20},
	}
	return NewOlistGen(cfg).(*olistGen)
}

func idPool(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = gen.NewOpaqueID()
	}
	return ids
}

func parseTs(t *testing.T, s string) time.Time {
	ts, err := time.Parse(gen.TimestampLayout, s)
	require.NoError(t, err)
	return ts
}

func TestOrderLifecycleTimestamps(t *testing.T) {
	g := newTestGen(21, 0)
	orders, _, _, _ := g.generateOrders(2000, idPool(50), idPool(50), idPool(20))
	require.Len(t, orders, 2000)

	for _, o := range orders {
		require.NotNil(t, o.OrderID)
		require.NotNil(t, o.PurchaseTimestamp)
		require.NotEmpty(t, o.EstimatedDeliveryDate)

		purchase := parseTs(t, *o.PurchaseTimestamp)
		require.False(t, purchase.Before(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)))
		require.False(t, purchase.After(time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC)))

		if o.Status == "created" {
			require.Nil(t, o.ApprovedAt)
		} else {
			require.NotNil(t, o.ApprovedAt)
			require.True(t, parseTs(t, *o.ApprovedAt).After(purchase))
		}

		if o.Status == "shipped" || o.Status == "delivered" {
			require.NotNil(t, o.DeliveredCarrierDate)
			require.True(t, parseTs(t, *o.DeliveredCarrierDate).After(purchase))
		} else {
			require.Nil(t, o.DeliveredCarrierDate)
		}

		if o.Status == "delivered" {
			require.NotNil(t, o.DeliveredCustomerDate)
			require.True(t, parseTs(t, *o.DeliveredCustomerDate).After(purchase))
		} else {
			require.Nil(t, o.DeliveredCustomerDate)
		}
	}
}

func TestOrderFanOut(t *testing.T) {
	g := newTestGen(22, 0)
	orders, items, payments, _ := g.generateOrders(500, idPool(50), idPool(50), idPool(20))

	products := map[string]struct{}{}
	sellers := map[string]struct{}{}
	itemTotals := map[string]float64{}
	itemCounts := map[string]int{}
	for _, i := range items {
		itemTotals[i.OrderID] += i.Price + i.FreightValue
		itemCounts[i.OrderID]++
		require.Equal(t, itemCounts[i.OrderID], i.OrderItemID, "item ids must be sequential per order")
		require.Greater(t, i.Price, 0.0)
		require.Greater(t, i.FreightValue, 0.0)
		products[i.ProductID] = struct{}{}
		sellers[i.SellerID] = struct{}{}
	}

	paymentTotals := map[string]float64{}
	paymentCounts := map[string]int{}
	for _, p := range payments {
		paymentTotals[p.OrderID] += p.PaymentValue
		paymentCounts[p.OrderID]++
		require.Equal(t, paymentCounts[p.OrderID], p.PaymentSequential)
		require.Contains(t, paymentTypes, p.PaymentType)
		require.GreaterOrEqual(t, p.PaymentInstallment, 1)
		require.LessOrEqual(t, p.PaymentInstallment, 12)
	}

	for _, o := range orders {
		id := *o.OrderID
		require.GreaterOrEqual(t, itemCounts[id], 1)
		require.LessOrEqual(t, itemCounts[id], 5)
		require.GreaterOrEqual(t, paymentCounts[id], 1)
		require.LessOrEqual(t, paymentCounts[id], 3)
		// Splitting and per-payment rounding may drift by at most half a
		// cent per payment.
		require.InDelta(t, itemTotals[id], paymentTotals[id], 0.05)
	}
}

func TestReviewsOnlyForDeliveredOrders(t *testing.T) {
	g := newTestGen(23, 0)
	orders, _, _, reviews := g.generateOrders(7000, idPool(50), idPool(50), idPool(20))

	statusByOrder := map[string]string{}
	delivered := 0
	for _, o := range orders {
		statusByOrder[*o.OrderID] = o.Status
		if o.Status == "delivered" {
			delivered++
		}
	}
	require.Greater(t, delivered, 0)

	for _, r := range reviews {
		require.Equal(t, "delivered", statusByOrder[r.OrderID])
		require.GreaterOrEqual(t, r.ReviewScore, 1)
		require.LessOrEqual(t, r.ReviewScore, 5)
		require.True(t, parseTs(t, r.AnswerTimestamp).After(parseTs(t, r.CreationDate)))
	}

	ratio := float64(len(reviews)) / float64(delivered)
	require.Greater(t, ratio, 0.55)
	require.Less(t, ratio, 0.85)
}
