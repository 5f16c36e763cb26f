package olist

import (
	"context"
	"fmt"
	"lakegen/cdc"
	"lakegen/gen"
	"lakegen/sink"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
)

// olistGen drives the whole run: the initial load for every entity, then
// the CDC batches against the evolving customer/product/seller populations.
type olistGen struct {
	cfg     gen.GeneratorConfig
	faker   *gofakeit.Faker
	dist    gen.RandDist
	corrupt *Corruptor
	engine  *cdc.Generator
}

func NewOlistGen(cfg gen.GeneratorConfig) gen.LoadGenerator {
	faker := gofakeit.New(cfg.Seed)
	return &olistGen{
		cfg:     cfg,
		faker:   faker,
		dist:    gen.NewRandDist(cfg),
		corrupt: NewCorruptor(faker, cfg.BadDataRate),
		engine:  cdc.NewGenerator(faker),
	}
}

func (g *olistGen) SinkTopics() []string {
	return []string{
		"customers", "products", "sellers", "geolocation",
		"orders", "order_items", "order_payments", "order_reviews",
		"cdc_customers", "cdc_products", "cdc_sellers",
	}
}

func send(ctx context.Context, outCh chan<- sink.SinkRecord, r sink.SinkRecord) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case outCh <- r:
		return nil
	}
}

func sendAll[R sink.SinkRecord](ctx context.Context, outCh chan<- sink.SinkRecord, records []R) error {
	for _, r := range records {
		if err := send(ctx, outCh, r); err != nil {
			return err
		}
	}
	return nil
}

func (g *olistGen) Load(ctx context.Context, outCh chan<- sink.SinkRecord) error {
	customers := g.generateCustomers(g.cfg.Customers.Rand(g.faker))
	products := g.generateProducts(g.cfg.Products.Rand(g.faker))
	sellers := g.generateSellers(g.cfg.Sellers.Rand(g.faker))
	geolocations := g.generateGeolocations()

	// Id pools for the relational entities. Records whose id was nulled by
	// the corruptor cannot be referenced.
	var customerIDs, productIDs, sellerIDs []string
	for _, c := range customers {
		if c.CustomerID != nil {
			customerIDs = append(customerIDs, *c.CustomerID)
		}
	}
	for _, p := range products {
		if p.ProductID != nil {
			productIDs = append(productIDs, *p.ProductID)
		}
	}
	for _, s := range sellers {
		if s.SellerID != nil {
			sellerIDs = append(sellerIDs, *s.SellerID)
		}
	}
	if err := checkIDPools(customerIDs, productIDs, sellerIDs); err != nil {
		return err
	}

	orders, items, payments, reviews := g.generateOrders(
		g.cfg.Orders.Rand(g.faker), customerIDs, productIDs, sellerIDs)

	log.Info().
		Int("customers", len(customers)).
		Int("products", len(products)).
		Int("sellers", len(sellers)).
		Int("geolocations", len(geolocations)).
		Int("orders", len(orders)).
		Int("order_items", len(items)).
		Int("order_payments", len(payments)).
		Int("order_reviews", len(reviews)).
		Msg("generated initial load")

	if err := sendAll(ctx, outCh, customers); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, products); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, sellers); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, geolocations); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, orders); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, items); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, payments); err != nil {
		return err
	}
	if err := sendAll(ctx, outCh, reviews); err != nil {
		return err
	}

	pools := []struct {
		pop     *cdc.Population
		factory cdc.Factory
	}{
		{cdc.NewPopulation("customers", customerRecords(customers)), customerFactory{g}},
		{cdc.NewPopulation("products", productRecords(products)), productFactory{g}},
		{cdc.NewPopulation("sellers", sellerRecords(sellers)), sellerFactory{g}},
	}

	for batch := 0; batch < g.cfg.CdcBatches; batch++ {
		for _, p := range pools {
			changes := g.cfg.CdcChanges.Rand(g.faker)
			events, err := g.engine.GenerateBatch(p.pop, p.factory, batch, changes)
			if err != nil {
				return err
			}
			log.Info().
				Str("entity", p.pop.Name()).
				Int("batch", batch+1).
				Int("changes", len(events)).
				Int("population", p.pop.Len()).
				Msg("generated cdc batch")
			if err := sendAll(ctx, outCh, events); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkIDPools rejects a run whose referenceable id pools came out empty.
// That can only happen when the bad-data rate nulled every id of a kind,
// which at tiny counts and extreme rates is reachable; orders cannot be
// generated against an empty pool.
func checkIDPools(customerIDs, productIDs, sellerIDs []string) error {
	pools := []struct {
		name string
		ids  []string
	}{
		{"customer", customerIDs},
		{"product", productIDs},
		{"seller", sellerIDs},
	}
	for _, p := range pools {
		if len(p.ids) == 0 {
			return fmt.Errorf("no usable %s ids: every generated id was corrupted, lower the bad data rate or raise the count", p.name)
		}
	}
	return nil
}

func customerRecords(customers []*Customer) []cdc.Record {
	records := make([]cdc.Record, len(customers))
	for i, c := range customers {
		records[i] = c
	}
	return records
}

func productRecords(products []*Product) []cdc.Record {
	records := make([]cdc.Record, len(products))
	for i, p := range products {
		records[i] = p
	}
	return records
}

func sellerRecords(sellers []*Seller) []cdc.Record {
	records := make([]cdc.Record, len(sellers))
	for i, s := range sellers {
		records[i] = s
	}
	return records
}
