package olist

import (
	"encoding/json"
	"fmt"
	"lakegen/cdc"
	"lakegen/gen"
	"lakegen/sink"
	"strconv"
)

// The *_lenght column names carry the typo of the upstream Olist dataset;
// the downstream pipelines expect them verbatim.
type Product struct {
	sink.BaseSinkRecord

	ProductID         *string `json:"product_id"`
	Category          string  `json:"product_category_name"`
	NameLength        int     `json:"product_name_lenght"`
	DescriptionLength int     `json:"product_description_lenght"`
	PhotosQty         int     `json:"product_photos_qty"`
	WeightG           int     `json:"product_weight_g"`
	LengthCm          int     `json:"product_length_cm"`
	HeightCm          int     `json:"product_height_cm"`
	WidthCm           int     `json:"product_width_cm"`
}

func (p *Product) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(product_id, product_category_name, product_name_lenght, product_description_lenght, product_photos_qty, product_weight_g, product_length_cm, product_height_cm, product_width_cm)
values (%s, '%s', %d, %d, %d, %d, %d, %d, %d)`,
		"products", sqlString(p.ProductID), p.Category, p.NameLength, p.DescriptionLength,
		p.PhotosQty, p.WeightG, p.LengthCm, p.HeightCm, p.WidthCm)
}

func (p *Product) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(p)
	return "products", csvString(p.ProductID), data
}

func (p *Product) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"product_id", "product_category_name", "product_name_lenght",
		"product_description_lenght", "product_photos_qty", "product_weight_g",
		"product_length_cm", "product_height_cm", "product_width_cm",
	}
	row = []string{
		csvString(p.ProductID), p.Category, strconv.Itoa(p.NameLength),
		strconv.Itoa(p.DescriptionLength), strconv.Itoa(p.PhotosQty),
		strconv.Itoa(p.WeightG), strconv.Itoa(p.LengthCm),
		strconv.Itoa(p.HeightCm), strconv.Itoa(p.WidthCm),
	}
	return "products/products_initial", header, row
}

func (p *Product) Clone() cdc.Record {
	cp := *p
	if p.ProductID != nil {
		cp.ProductID = ptr(*p.ProductID)
	}
	return &cp
}

func (g *olistGen) newProduct() *Product {
	return &Product{
		ProductID:         ptr(gen.NewOpaqueID()),
		Category:          choice(g.faker, productCategories),
		NameLength:        g.faker.IntRange(10, 100),
		DescriptionLength: g.faker.IntRange(50, 500),
		PhotosQty:         g.faker.IntRange(1, 10),
		WeightG:           g.faker.IntRange(100, 50000),
		LengthCm:          g.faker.IntRange(5, 100),
		HeightCm:          g.faker.IntRange(5, 100),
		WidthCm:           g.faker.IntRange(5, 100),
	}
}

func (g *olistGen) generateProducts(count int) []*Product {
	products := make([]*Product, count)
	for i := range products {
		p := g.newProduct()
		g.corrupt.Product(p)
		products[i] = p
	}
	return products
}
