package olist

import (
	"github.com/linkedin/goavro/v2"
)

// Avro codecs for the CDC change events. The schemas are flat: the three
// wrapper columns followed by the entity's own columns, with unions for the
// nullable ones.

var customerChangeSchema = `
{
	"type": "record",
	"name": "CustomerChange",
	"fields": [
	  { "name": "sequence_number", "type": "long" },
	  { "name": "operation", "type": "string" },
	  { "name": "change_timestamp", "type": "string" },
	  { "name": "customer_id", "type": ["null", "string"] },
	  { "name": "customer_unique_id", "type": "string" },
	  { "name": "customer_zip_code_prefix", "type": ["null", "int"] },
	  { "name": "customer_city", "type": "string" },
	  { "name": "customer_state", "type": "string" },
	  { "name": "customer_name", "type": "string" },
	  { "name": "customer_email", "type": "string" },
	  { "name": "customer_phone", "type": "string" }
	]
}
`

var productChangeSchema = `
{
	"type": "record",
	"name": "ProductChange",
	"fields": [
	  { "name": "sequence_number", "type": "long" },
	  { "name": "operation", "type": "string" },
	  { "name": "change_timestamp", "type": "string" },
	  { "name": "product_id", "type": ["null", "string"] },
	  { "name": "product_category_name", "type": "string" },
	  { "name": "product_name_lenght", "type": "int" },
	  { "name": "product_description_lenght", "type": "int" },
	  { "name": "product_photos_qty", "type": "int" },
	  { "name": "product_weight_g", "type": "int" },
	  { "name": "product_length_cm", "type": "int" },
	  { "name": "product_height_cm", "type": "int" },
	  { "name": "product_width_cm", "type": "int" }
	]
}
`

var sellerChangeSchema = `
{
	"type": "record",
	"name": "SellerChange",
	"fields": [
	  { "name": "sequence_number", "type": "long" },
	  { "name": "operation", "type": "string" },
	  { "name": "change_timestamp", "type": "string" },
	  { "name": "seller_id", "type": ["null", "string"] },
	  { "name": "seller_zip_code_prefix", "type": "int" },
	  { "name": "seller_city", "type": "string" },
	  { "name": "seller_state", "type": "string" }
	]
}
`

var (
	customerChangeCodec *goavro.Codec
	productChangeCodec  *goavro.Codec
	sellerChangeCodec   *goavro.Codec
)

func init() {
	var err error
	if customerChangeCodec, err = goavro.NewCodec(customerChangeSchema); err != nil {
		panic(err)
	}
	if productChangeCodec, err = goavro.NewCodec(productChangeSchema); err != nil {
		panic(err)
	}
	if sellerChangeCodec, err = goavro.NewCodec(sellerChangeSchema); err != nil {
		panic(err)
	}
}

func avroNullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return map[string]interface{}{"string": *s}
}

func avroNullableInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return map[string]interface{}{"int": *i}
}

func (c *Customer) AvroNative() map[string]interface{} {
	return map[string]interface{}{
		"customer_id":              avroNullableString(c.CustomerID),
		"customer_unique_id":       c.UniqueID,
		"customer_zip_code_prefix": avroNullableInt(c.ZipPrefix),
		"customer_city":            c.City,
		"customer_state":           c.State,
		"customer_name":            c.Name,
		"customer_email":           c.Email,
		"customer_phone":           c.Phone,
	}
}

func (c *Customer) EventCodec() *goavro.Codec {
	return customerChangeCodec
}

func (p *Product) AvroNative() map[string]interface{} {
	return map[string]interface{}{
		"product_id":                 avroNullableString(p.ProductID),
		"product_category_name":      p.Category,
		"product_name_lenght":        p.NameLength,
		"product_description_lenght": p.DescriptionLength,
		"product_photos_qty":         p.PhotosQty,
		"product_weight_g":           p.WeightG,
		"product_length_cm":          p.LengthCm,
		"product_height_cm":          p.HeightCm,
		"product_width_cm":           p.WidthCm,
	}
}

func (p *Product) EventCodec() *goavro.Codec {
	return productChangeCodec
}

func (s *Seller) AvroNative() map[string]interface{} {
	return map[string]interface{}{
		"seller_id":              avroNullableString(s.SellerID),
		"seller_zip_code_prefix": s.ZipPrefix,
		"seller_city":            s.City,
		"seller_state":           s.State,
	}
}

func (s *Seller) EventCodec() *goavro.Codec {
	return sellerChangeCodec
}
