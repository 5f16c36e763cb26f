package olist

import (
	"encoding/json"
	"fmt"
	"lakegen/gen"
	"lakegen/sink"
	"strconv"
)

// Geolocation is static reference data: a handful of plausible coordinates
// per state.
type Geolocation struct {
	sink.BaseSinkRecord

	ZipPrefix int     `json:"geolocation_zip_code_prefix"`
	Lat       float64 `json:"geolocation_lat"`
	Lng       float64 `json:"geolocation_lng"`
	City      string  `json:"geolocation_city"`
	State     string  `json:"geolocation_state"`
}

func (g *Geolocation) ToPostgresSql() string {
	return fmt.Sprintf(`INSERT INTO %s
(geolocation_zip_code_prefix, geolocation_lat, geolocation_lng, geolocation_city, geolocation_state)
values (%d, %f, %f, '%s', '%s')`,
		"geolocation", g.ZipPrefix, g.Lat, g.Lng, g.City, g.State)
}

func (g *Geolocation) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(g)
	return "geolocation", strconv.Itoa(g.ZipPrefix), data
}

func (g *Geolocation) ToCsv() (path string, header []string, row []string) {
	header = []string{
		"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng",
		"geolocation_city", "geolocation_state",
	}
	row = []string{
		strconv.Itoa(g.ZipPrefix),
		strconv.FormatFloat(g.Lat, 'f', 6, 64),
		strconv.FormatFloat(g.Lng, 'f', 6, 64),
		g.City, g.State,
	}
	return "geolocation/geolocation_initial", header, row
}

const geolocationsPerState = 10

func (g *olistGen) generateGeolocations() []*Geolocation {
	var rows []*Geolocation
	for _, state := range gen.StateCodes() {
		for i := 0; i < geolocationsPerState; i++ {
			rows = append(rows, &Geolocation{
				ZipPrefix: g.faker.IntRange(10000, 99999),
				Lat:       g.faker.Float64Range(-30, -5),
				Lng:       g.faker.Float64Range(-55, -35),
				City:      gen.CityOf(state),
				State:     state,
			})
		}
	}
	return rows
}
