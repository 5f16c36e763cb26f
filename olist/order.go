package olist

import (
	"encoding/json"
	"fmt"
	"lakegen/gen"
	"lakegen/sink"
	"math"
	"strconv"
	"time"
)

// Purchase timestamps are drawn from a fixed two-year window.
var (
	purchaseWindowStart = time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
	purchaseWindowEnd   = time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC)
)

type Order struct {
	sink.BaseSinkRecord

	OrderID               *string `json:"order_id"`
	CustomerID            string  `json:"customer_id"`
	Status                string  `json:"order_status"`
	PurchaseTimestamp     *string `json:"order_purchase_timestamp"`
	ApprovedAt            *string `json:"order_approved_at"`
	DeliveredCarrierDate  *string `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate *string `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate string  `json:"order_estimated_delivery_date"`
}

func (o *Order) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(order_id, customer_id, order_status, order_purchase_timestamp, order_approved_at, order_delivered_carrier_date, order_delivered_customer_date, order_estimated_delivery_date)
values (%s, '%s', '%s', %s, %s, %s, %s, '%s')`,
		"orders", sqlString(o.OrderID), o.CustomerID, o.Status, sqlString(o.PurchaseTimestamp),
		sqlString(o.ApprovedAt), sqlString(o.DeliveredCarrierDate), sqlString(o.DeliveredCustomerDate),
		o.EstimatedDeliveryDate)
}

func (o *Order) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(o)
	return "orders", csvString(o.OrderID), data
}

func (o *Order) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"order_id", "customer_id", "order_status", "order_purchase_timestamp",
		"order_approved_at", "order_delivered_carrier_date",
		"order_delivered_customer_date", "order_estimated_delivery_date",
	}
	row = []string{
		csvString(o.OrderID), o.CustomerID, o.Status, csvString(o.PurchaseTimestamp),
		csvString(o.ApprovedAt), csvString(o.DeliveredCarrierDate),
		csvString(o.DeliveredCustomerDate), o.EstimatedDeliveryDate,
	}
	return "orders/orders_initial", header, row
}

type OrderItem struct {
	sink.BaseSinkRecord

	OrderID           string  `json:"order_id"`
	OrderItemID       int     `json:"order_item_id"`
	ProductID         string  `json:"product_id"`
	SellerID          string  `json:"seller_id"`
	ShippingLimitDate string  `json:"shipping_limit_date"`
	Price             float64 `json:"price"`
	FreightValue      float64 `json:"freight_value"`
}

func (i *OrderItem) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(order_id, order_item_id, product_id, seller_id, shipping_limit_date, price, freight_value)
values ('%s', %d, '%s', '%s', '%s', %.2f, %.2f)`,
		"order_items", i.OrderID, i.OrderItemID, i.ProductID, i.SellerID,
		i.ShippingLimitDate, i.Price, i.FreightValue)
}

func (i *OrderItem) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(i)
	return "order_items", i.OrderID, data
}

func (i *OrderItem) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"order_id", "order_item_id", "product_id", "seller_id",
		"shipping_limit_date", "price", "freight_value",
	}
	row = []string{
		i.OrderID, strconv.Itoa(i.OrderItemID), i.ProductID, i.SellerID,
		i.ShippingLimitDate, csvFloat(i.Price), csvFloat(i.FreightValue),
	}
	return "order_items/order_items_initial", header, row
}

type Payment struct {
	sink.BaseSinkRecord

	OrderID            string  `json:"order_id"`
	PaymentSequential  int     `json:"payment_sequential"`
	PaymentType        string  `json:"payment_type"`
	PaymentInstallment int     `json:"payment_installments"`
	PaymentValue       float64 `json:"payment_value"`
}

func (p *Payment) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(order_id, payment_sequential, payment_type, payment_installments, payment_value)
values ('%s', %d, '%s', %d, %.2f)`,
		"order_payments", p.OrderID, p.PaymentSequential, p.PaymentType,
		p.PaymentInstallment, p.PaymentValue)
}

func (p *Payment) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(p)
	return "order_payments", p.OrderID, data
}

func (p *Payment) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"order_id", "payment_sequential", "payment_type",
		"payment_installments", "payment_value",
	}
	row = []string{
		p.OrderID, strconv.Itoa(p.PaymentSequential), p.PaymentType,
		strconv.Itoa(p.PaymentInstallment), csvFloat(p.PaymentValue),
	}
	return "order_payments/order_payments_initial", header, row
}

type Review struct {
	sink.BaseSinkRecord

	ReviewID        string  `json:"review_id"`
	OrderID         string  `json:"order_id"`
	ReviewScore     int     `json:"review_score"`
	CommentTitle    *string `json:"review_comment_title"`
	CommentMessage  *string `json:"review_comment_message"`
	CreationDate    string  `json:"review_creation_date"`
	AnswerTimestamp string  `json:"review_answer_timestamp"`
}

func (r *Review) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(review_id, order_id, review_score, review_comment_title, review_comment_message, review_creation_date, review_answer_timestamp)
values ('%s', '%s', %d, %s, %s, '%s', '%s')`,
		"order_reviews", r.ReviewID, r.OrderID, r.ReviewScore, sqlString(r.CommentTitle),
		sqlString(r.CommentMessage), r.CreationDate, r.AnswerTimestamp)
}

func (r *Review) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(r)
	return "order_reviews", r.ReviewID, data
}

func (r *Review) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"review_id", "order_id", "review_score", "review_comment_title",
		"review_comment_message", "review_creation_date", "review_answer_timestamp",
	}
	row = []string{
		r.ReviewID, r.OrderID, strconv.Itoa(r.ReviewScore),
		csvString(r.CommentTitle), csvString(r.CommentMessage),
		r.CreationDate, r.AnswerTimestamp,
	}
	return "order_reviews/order_reviews_initial", header, row
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatTs(t time.Time) string {
	return t.Format(gen.TimestampLayout)
}

// generateOrders produces orders together with their dependent items,
// payments and reviews in one pass.
//
// Lifecycle timestamps are derived from the purchase time with fixed offset
// windows per stage and are only present when the status has reached that
// stage. The estimated delivery date is computed independently of the actual
// delivery dates on purpose: the chronological inconsistency it can produce
// feeds the downstream data-quality rules.
func (g *olistGen) generateOrders(count int, customerIDs, productIDs, sellerIDs []string) (
	orders []*Order, items []*OrderItem, payments []*Payment, reviews []*Review) {

	for n := 0; n < count; n++ {
		orderID := gen.NewOpaqueID()
		purchase := g.faker.DateRange(purchaseWindowStart, purchaseWindowEnd)
		status := choice(g.faker, orderStatuses)

		order := &Order{
			OrderID:               ptr(orderID),
			CustomerID:            choice(g.faker, customerIDs),
			Status:                status,
			PurchaseTimestamp:     ptr(formatTs(purchase)),
			EstimatedDeliveryDate: formatTs(purchase.AddDate(0, 0, g.faker.IntRange(7, 45))),
		}
		if status != "created" {
			order.ApprovedAt = ptr(formatTs(purchase.Add(time.Duration(g.faker.IntRange(1, 24)) * time.Hour)))
		}
		if status == "shipped" || status == "delivered" {
			order.DeliveredCarrierDate = ptr(formatTs(purchase.AddDate(0, 0, g.faker.IntRange(1, 5))))
		}
		if status == "delivered" {
			order.DeliveredCustomerDate = ptr(formatTs(purchase.AddDate(0, 0, g.faker.IntRange(5, 30))))
		}
		g.corrupt.Order(order)
		orders = append(orders, order)

		// 1-5 items per order.
		var itemTotal float64
		numItems := g.faker.IntRange(1, 5)
		for itemID := 1; itemID <= numItems; itemID++ {
			item := &OrderItem{
				OrderID:           orderID,
				OrderItemID:       itemID,
				ProductID:         choice(g.faker, productIDs),
				SellerID:          choice(g.faker, sellerIDs),
				ShippingLimitDate: formatTs(purchase.AddDate(0, 0, g.faker.IntRange(1, 7))),
				Price:             round2(10 + g.dist.Rand(990)),
				FreightValue:      round2(5 + g.dist.Rand(95)),
			}
			g.corrupt.OrderItem(item)
			itemTotal += item.Price + item.FreightValue
			items = append(items, item)
		}

		// 1-3 payments per order, splitting the item total evenly.
		numPayments := g.faker.IntRange(1, 3)
		perPayment := round2(itemTotal / float64(numPayments))
		for seq := 1; seq <= numPayments; seq++ {
			payment := &Payment{
				OrderID:            orderID,
				PaymentSequential:  seq,
				PaymentType:        choice(g.faker, paymentTypes),
				PaymentInstallment: g.faker.IntRange(1, 12),
				PaymentValue:       perPayment,
			}
			g.corrupt.Payment(payment)
			payments = append(payments, payment)
		}

		// Only delivered orders may carry a review.
		if status == "delivered" && g.faker.Float64Range(0, 1) < reviewProbability {
			reviewDate := purchase.AddDate(0, 0, g.faker.IntRange(10, 60))
			review := &Review{
				ReviewID:        gen.NewOpaqueID(),
				OrderID:         orderID,
				ReviewScore:     g.faker.IntRange(1, 5),
				CreationDate:    formatTs(reviewDate),
				AnswerTimestamp: formatTs(reviewDate.AddDate(0, 0, g.faker.IntRange(1, 7))),
			}
			if g.faker.Bool() {
				review.CommentTitle = ptr("Review Title")
			}
			if g.faker.Bool() {
				review.CommentMessage = ptr("This is a review comment.")
			}
			g.corrupt.Review(review)
			reviews = append(reviews, review)
		}
	}
	return orders, items, payments, reviews
}

// reviewProbability is the chance a delivered order gets a review.
const reviewProbability = 0.7
