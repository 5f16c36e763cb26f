package olist

import (
	"encoding/json"
	"fmt"
	"lakegen/cdc"
	"lakegen/gen"
	"lakegen/sink"
	"strconv"
)

type Seller struct {
	sink.BaseSinkRecord

	SellerID  *string `json:"seller_id"`
	ZipPrefix int     `json:"seller_zip_code_prefix"`
	City      string  `json:"seller_city"`
	State     string  `json:"seller_state"`
}

func (s *Seller) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(seller_id, seller_zip_code_prefix, seller_city, seller_state)
values (%s, %d, '%s', '%s')`,
		"sellers", sqlString(s.SellerID), s.ZipPrefix, s.City, s.State)
}

func (s *Seller) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(s)
	return "sellers", csvString(s.SellerID), data
}

func (s *Seller) ToCsv() (path string, header []string, row []string) {
	header = []string{"seller_id", "seller_zip_code_prefix", "seller_city", "seller_state"}
	row = []string{csvString(s.SellerID), strconv.Itoa(s.ZipPrefix), s.City, s.State}
	return "sellers/sellers_initial", header, row
}

func (s *Seller) Clone() cdc.Record {
	cp := *s
	if s.SellerID != nil {
		cp.SellerID = ptr(*s.SellerID)
	}
	return &cp
}

func (g *olistGen) newSeller() *Seller {
	loc := gen.RandomLocation(g.faker)
	return &Seller{
		SellerID:  ptr(gen.NewOpaqueID()),
		ZipPrefix: loc.ZipPrefix,
		City:      loc.City,
		State:     loc.State,
	}
}

func (g *olistGen) generateSellers(count int) []*Seller {
	sellers := make([]*Seller, count)
	for i := range sellers {
		s := g.newSeller()
		g.corrupt.Seller(s)
		sellers[i] = s
	}
	return sellers
}
