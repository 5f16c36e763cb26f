package olist

import (
	"lakegen/cdc"
	"lakegen/gen"
	"strings"
)

// Probability that a customer UPDATE also rewrites the email or phone,
// drawn independently for each.
const contactUpdateProbability = 0.3

// customerFactory adapts the customer rules to the CDC engine.
type customerFactory struct {
	g *olistGen
}

func (f customerFactory) New() cdc.Record {
	return f.g.newCustomer()
}

func (f customerFactory) Update(r cdc.Record) {
	c := r.(*Customer)
	loc := gen.RandomLocation(f.g.faker)
	c.City = loc.City
	c.State = loc.State
	c.ZipPrefix = ptr(loc.ZipPrefix)
	if f.g.faker.Float64Range(0, 1) < contactUpdateProbability {
		first, last := c.Name, ""
		if parts := strings.SplitN(c.Name, " ", 2); len(parts) == 2 {
			first, last = parts[0], parts[1]
		}
		c.Email = gen.DeriveEmail(f.g.faker, first, last)
	}
	if f.g.faker.Float64Range(0, 1) < contactUpdateProbability {
		c.Phone = gen.DerivePhone(f.g.faker)
	}
}

type productFactory struct {
	g *olistGen
}

func (f productFactory) New() cdc.Record {
	return f.g.newProduct()
}

func (f productFactory) Update(r cdc.Record) {
	p := r.(*Product)
	p.Category = choice(f.g.faker, productCategories)
	p.WeightG = f.g.faker.IntRange(100, 50000)
}

type sellerFactory struct {
	g *olistGen
}

func (f sellerFactory) New() cdc.Record {
	return f.g.newSeller()
}

func (f sellerFactory) Update(r cdc.Record) {
	s := r.(*Seller)
	loc := gen.RandomLocation(f.g.faker)
	s.City = loc.City
	s.State = loc.State
	s.ZipPrefix = loc.ZipPrefix
}
