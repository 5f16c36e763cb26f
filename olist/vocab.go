package olist

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

var productCategories = []string{
	"electronics", "computers", "home appliances", "furniture", "sports",
	"toys", "health beauty", "fashion bags", "watches gifts", "garden tools",
	"auto", "books", "music", "food drink", "pet shop",
}

var orderStatuses = []string{
	"created", "approved", "invoiced", "processing", "shipped", "delivered", "canceled",
}

var paymentTypes = []string{
	"credit_card", "boleto", "voucher", "debit_card",
}

// OrderStatuses returns the fixed status vocabulary.
func OrderStatuses() []string {
	return orderStatuses
}

func choice(faker *gofakeit.Faker, vocab []string) string {
	return vocab[faker.IntRange(0, len(vocab)-1)]
}

// CSV/SQL cell formatting. A nil pointer renders as an empty CSV cell and a
// SQL NULL.

func csvString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func csvInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func csvFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func sqlString(s *string) string {
	if s == nil {
		return "NULL"
	}
	return fmt.Sprintf("'%s'", *s)
}

func sqlInt(i *int) string {
	if i == nil {
		return "NULL"
	}
	return strconv.Itoa(*i)
}

func ptr[T any](v T) *T {
	return &v
}
