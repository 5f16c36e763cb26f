package olist

import (
	"encoding/json"
	"fmt"
	"lakegen/cdc"
	"lakegen/gen"
	"lakegen/sink"
)

type Customer struct {
	sink.BaseSinkRecord

	CustomerID *string `json:"customer_id"`
	UniqueID   string  `json:"customer_unique_id"`
	ZipPrefix  *int    `json:"customer_zip_code_prefix"`
	City       string  `json:"customer_city"`
	State      string  `json:"customer_state"`
	Name       string  `json:"customer_name"`
	Email      string  `json:"customer_email"`
	Phone      string  `json:"customer_phone"`
}

func (c *Customer) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state, customer_name, customer_email, customer_phone)
values (%s, '%s', %s, '%s', '%s', '%s', '%s', '%s')`,
		"customers", sqlString(c.CustomerID), c.UniqueID, sqlInt(c.ZipPrefix), c.City, c.State, c.Name, c.Email, c.Phone)
}

func (c *Customer) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(c)
	return "customers", csvString(c.CustomerID), data
}

func (c *Customer) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"customer_id", "customer_unique_id", "customer_zip_code_prefix",
		"customer_city", "customer_state", "customer_name", "customer_email",
		"customer_phone",
	}
	row = []string{
		csvString(c.CustomerID), c.UniqueID, csvInt(c.ZipPrefix),
		c.City, c.State, c.Name, c.Email, c.Phone,
	}
	return "customers/customers_initial", header, row
}

func (c *Customer) Clone() cdc.Record {
	cp := *c
	if c.CustomerID != nil {
		cp.CustomerID = ptr(*c.CustomerID)
	}
	if c.ZipPrefix != nil {
		cp.ZipPrefix = ptr(*c.ZipPrefix)
	}
	return &cp
}

// newCustomer builds a clean customer record.
func (g *olistGen) newCustomer() *Customer {
	loc := gen.RandomLocation(g.faker)
	first, last := gen.RandomName(g.faker)
	return &Customer{
		CustomerID: ptr(gen.NewOpaqueID()),
		UniqueID:   gen.NewOpaqueID(),
		ZipPrefix:  ptr(loc.ZipPrefix),
		City:       loc.City,
		State:      loc.State,
		Name:       first + " " + last,
		Email:      gen.DeriveEmail(g.faker, first, last),
		Phone:      gen.DerivePhone(g.faker),
	}
}

func (g *olistGen) generateCustomers(count int) []*Customer {
	customers := make([]*Customer, count)
	for i := range customers {
		c := g.newCustomer()
		g.corrupt.Customer(c)
		customers[i] = c
	}
	return customers
}
