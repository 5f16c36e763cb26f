package olist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorruptorRateZeroLeavesRecordsClean(t *testing.T) {
	g := newTestGen(31, 0)

	for i := 0; i < 100; i++ {
		c := g.newCustomer()
		before := *c.Clone().(*Customer)
		g.corrupt.Customer(c)
		require.Equal(t, before, *c)

		p := g.newProduct()
		pBefore := *p.Clone().(*Product)
		g.corrupt.Product(p)
		require.Equal(t, pBefore, *p)

		s := g.newSeller()
		sBefore := *s.Clone().(*Seller)
		g.corrupt.Seller(s)
		require.Equal(t, sBefore, *s)
	}
}

// changed counts how many of the given predicates report a difference.
func changed(preds ...bool) int {
	n := 0
	for _, p := range preds {
		if p {
			n++
		}
	}
	return n
}

func strPtrDiffers(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	return a != nil && *a != *b
}

func intPtrDiffers(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	return a != nil && *a != *b
}

func TestCorruptorRateOneInjectsExactlyOneViolation(t *testing.T) {
	g := newTestGen(32, 1)

	for i := 0; i < 200; i++ {
		c := g.newCustomer()
		before := c.Clone().(*Customer)
		g.corrupt.Customer(c)
		require.Equal(t, 1, changed(
			strPtrDiffers(before.CustomerID, c.CustomerID),
			intPtrDiffers(before.ZipPrefix, c.ZipPrefix),
		))
		require.Equal(t, before.UniqueID, c.UniqueID)
		require.Equal(t, before.Email, c.Email)

		p := g.newProduct()
		pBefore := p.Clone().(*Product)
		g.corrupt.Product(p)
		require.Equal(t, 1, changed(
			strPtrDiffers(pBefore.ProductID, p.ProductID),
			pBefore.WeightG != p.WeightG,
			pBefore.LengthCm != p.LengthCm,
			pBefore.HeightCm != p.HeightCm,
			pBefore.WidthCm != p.WidthCm,
		))
		require.Equal(t, pBefore.Category, p.Category)

		s := g.newSeller()
		sBefore := s.Clone().(*Seller)
		g.corrupt.Seller(s)
		require.True(t, strPtrDiffers(sBefore.SellerID, s.SellerID))
		require.Equal(t, sBefore.City, s.City)
		require.Equal(t, sBefore.ZipPrefix, s.ZipPrefix)
	}
}

func TestCorruptorRateOneOrderEntities(t *testing.T) {
	g := newTestGen(33, 1)
	orders, items, payments, reviews := g.generateOrders(500, idPool(20), idPool(20), idPool(10))

	for _, o := range orders {
		require.Equal(t, 1, changed(
			o.OrderID == nil,
			o.Status == "INVALID_STATUS_XYZ",
			o.PurchaseTimestamp == nil,
		))
	}
	itemTotals := map[string]float64{}
	for _, i := range items {
		require.Equal(t, 1, changed(i.Price < 0, i.FreightValue < 0))
		itemTotals[i.OrderID] += i.Price + i.FreightValue
	}
	paymentCounts := map[string]int{}
	for _, p := range payments {
		paymentCounts[p.OrderID]++
	}
	for _, p := range payments {
		// The uncorrupted split can itself be negative once the order's items
		// took price or freight violations, so compare against it rather
		// than against zero.
		split := round2(itemTotals[p.OrderID] / float64(paymentCounts[p.OrderID]))
		if p.PaymentType == "INVALID_PAYMENT_TYPE" {
			require.Equal(t, split, p.PaymentValue, "type violation must leave the value untouched")
		} else {
			require.Contains(t, paymentTypes, p.PaymentType)
			require.GreaterOrEqual(t, p.PaymentValue, -100.0)
			require.LessOrEqual(t, p.PaymentValue, -1.0)
		}
	}
	for _, r := range reviews {
		require.True(t, r.ReviewScore == 0 || r.ReviewScore >= 6)
	}
}

func TestCorruptorRateIsHonored(t *testing.T) {
	g := newTestGen(34, 0.02)

	corrupted := 0
	const n = 10000
	for i := 0; i < n; i++ {
		c := g.newCustomer()
		before := c.Clone().(*Customer)
		g.corrupt.Customer(c)
		if strPtrDiffers(before.CustomerID, c.CustomerID) || intPtrDiffers(before.ZipPrefix, c.ZipPrefix) {
			corrupted++
		}
	}
	require.InDelta(t, 0.02, float64(corrupted)/float64(n), 0.01)
}
