package olist

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Corruptor injects data-quality violations into a small fraction of
// records so the downstream quality gates have something to catch. Each
// corrupted record receives exactly one violation, picked uniformly from
// the table for its entity type. The tables are keyed by Go type, so an
// unknown entity kind cannot be expressed at all.
//
// The corruptor is pure with respect to everything but the record it is
// handed: it never consults or touches the populations.
type Corruptor struct {
	faker *gofakeit.Faker
	rate  float64
}

func NewCorruptor(faker *gofakeit.Faker, rate float64) *Corruptor {
	return &Corruptor{faker: faker, rate: rate}
}

func (c *Corruptor) skip() bool {
	return c.faker.Float64Range(0, 1) >= c.rate
}

var customerViolations = []func(*Customer, *gofakeit.Faker){
	func(r *Customer, _ *gofakeit.Faker) { r.CustomerID = nil },
	func(r *Customer, _ *gofakeit.Faker) { r.CustomerID = ptr("INVALID_SHORT") },
	func(r *Customer, _ *gofakeit.Faker) { r.ZipPrefix = nil },
}

func (c *Corruptor) Customer(r *Customer) {
	if c.skip() {
		return
	}
	customerViolations[c.faker.IntRange(0, len(customerViolations)-1)](r, c.faker)
}

var productViolations = []func(*Product, *gofakeit.Faker){
	func(r *Product, _ *gofakeit.Faker) { r.ProductID = nil },
	func(r *Product, f *gofakeit.Faker) { r.WeightG = -f.IntRange(1, 1000) },
	func(r *Product, f *gofakeit.Faker) {
		v := -f.IntRange(1, 50)
		switch f.IntRange(0, 2) {
		case 0:
			r.LengthCm = v
		case 1:
			r.HeightCm = v
		case 2:
			r.WidthCm = v
		}
	},
}

func (c *Corruptor) Product(r *Product) {
	if c.skip() {
		return
	}
	productViolations[c.faker.IntRange(0, len(productViolations)-1)](r, c.faker)
}

var sellerViolations = []func(*Seller, *gofakeit.Faker){
	func(r *Seller, _ *gofakeit.Faker) { r.SellerID = nil },
	func(r *Seller, _ *gofakeit.Faker) { r.SellerID = ptr("BAD_SELLER") },
}

func (c *Corruptor) Seller(r *Seller) {
	if c.skip() {
		return
	}
	sellerViolations[c.faker.IntRange(0, len(sellerViolations)-1)](r, c.faker)
}

var orderViolations = []func(*Order, *gofakeit.Faker){
	func(r *Order, _ *gofakeit.Faker) { r.OrderID = nil },
	func(r *Order, _ *gofakeit.Faker) { r.Status = "INVALID_STATUS_XYZ" },
	func(r *Order, _ *gofakeit.Faker) { r.PurchaseTimestamp = nil },
}

func (c *Corruptor) Order(r *Order) {
	if c.skip() {
		return
	}
	orderViolations[c.faker.IntRange(0, len(orderViolations)-1)](r, c.faker)
}

var orderItemViolations = []func(*OrderItem, *gofakeit.Faker){
	func(r *OrderItem, f *gofakeit.Faker) { r.Price = -round2(f.Float64Range(1, 100)) },
	func(r *OrderItem, f *gofakeit.Faker) { r.FreightValue = -round2(f.Float64Range(1, 50)) },
}

func (c *Corruptor) OrderItem(r *OrderItem) {
	if c.skip() {
		return
	}
	orderItemViolations[c.faker.IntRange(0, len(orderItemViolations)-1)](r, c.faker)
}

var paymentViolations = []func(*Payment, *gofakeit.Faker){
	func(r *Payment, _ *gofakeit.Faker) { r.PaymentType = "INVALID_PAYMENT_TYPE" },
	func(r *Payment, f *gofakeit.Faker) { r.PaymentValue = -round2(f.Float64Range(1, 100)) },
}

func (c *Corruptor) Payment(r *Payment) {
	if c.skip() {
		return
	}
	paymentViolations[c.faker.IntRange(0, len(paymentViolations)-1)](r, c.faker)
}

var reviewViolations = []func(*Review, *gofakeit.Faker){
	func(r *Review, _ *gofakeit.Faker) { r.ReviewScore = 0 },
	func(r *Review, f *gofakeit.Faker) { r.ReviewScore = f.IntRange(6, 10) },
}

func (c *Corruptor) Review(r *Review) {
	if c.skip() {
		return
	}
	reviewViolations[c.faker.IntRange(0, len(reviewViolations)-1)](r, c.faker)
}
