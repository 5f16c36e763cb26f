package cdc

import (
	"encoding/json"
	"fmt"
	"lakegen/sink"
	"strconv"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/require"
)

// widget is a minimal record type for exercising the engine.
type widget struct {
	sink.BaseSinkRecord

	WidgetID string `json:"widget_id"`
	Color    string `json:"color"`
}

var widgetChangeCodec = func() *goavro.Codec {
	codec, err := goavro.NewCodec(`
{
	"type": "record",
	"name": "WidgetChange",
	"fields": [
	  { "name": "sequence_number", "type": "long" },
	  { "name": "operation", "type": "string" },
	  { "name": "change_timestamp", "type": "string" },
	  { "name": "widget_id", "type": "string" },
	  { "name": "color", "type": "string" }
	]
}
`)
	if err != nil {
		panic(err)
	}
	return codec
}()

func (w *widget) ToPostgresSql() string {
	return fmt.Sprintf("INSERT INTO widgets (widget_id, color) values ('%s', '%s')", w.WidgetID, w.Color)
}

func (w *widget) ToJson() (topic string, key string, data []byte) {
	data, _ = json.Marshal(w)
	return "widgets", w.WidgetID, data
}

func (w *widget) ToCsv() (path string, header []string, row []string) {
	return "widgets/widgets_initial", []string{"widget_id", "color"}, []string{w.WidgetID, w.Color}
}

func (w *widget) Clone() Record {
	cp := *w
	return &cp
}

func (w *widget) AvroNative() map[string]interface{} {
	return map[string]interface{}{"widget_id": w.WidgetID, "color": w.Color}
}

func (w *widget) EventCodec() *goavro.Codec {
	return widgetChangeCodec
}

type widgetFactory struct {
	faker  *gofakeit.Faker
	serial int
}

func (f *widgetFactory) New() Record {
	f.serial++
	return &widget{
		WidgetID: "w" + strconv.Itoa(f.serial),
		Color:    f.faker.Color(),
	}
}

func (f *widgetFactory) Update(r Record) {
	r.(*widget).Color = f.faker.Color()
}

func seedPopulation(n int) *Population {
	records := make([]Record, n)
	for i := range records {
		records[i] = &widget{WidgetID: "seed" + strconv.Itoa(i), Color: "grey"}
	}
	return NewPopulation("widgets", records)
}

func TestSequenceNumbersArePartitionedByBatch(t *testing.T) {
	faker := gofakeit.New(7)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	pop := seedPopulation(200)

	var prevMax int64 = -1
	for batch := 0; batch < 3; batch++ {
		events, err := g.GenerateBatch(pop, f, batch, 50)
		require.NoError(t, err)
		require.NotEmpty(t, events)

		lo := int64(batch) * SequenceStride
		hi := lo + SequenceStride
		prev := int64(-1)
		for _, e := range events {
			require.GreaterOrEqual(t, e.SequenceNumber, lo)
			require.Less(t, e.SequenceNumber, hi)
			if prev >= 0 {
				require.Greater(t, e.SequenceNumber, prev, "sequence numbers must be strictly increasing in emission order")
			}
			prev = e.SequenceNumber
		}
		require.Greater(t, events[0].SequenceNumber, prevMax, "batch ranges must be disjoint and ordered")
		prevMax = events[len(events)-1].SequenceNumber
	}
}

func TestOperationDistribution(t *testing.T) {
	faker := gofakeit.New(42)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	// Large enough that deletes can never drain it mid-run.
	pop := seedPopulation(5000)

	counts := map[Operation]int{}
	total := 0
	for batch := 0; batch < 2; batch++ {
		events, err := g.GenerateBatch(pop, f, batch, 5000)
		require.NoError(t, err)
		for _, e := range events {
			counts[e.Operation]++
			total++
		}
	}
	require.Equal(t, 10000, total, "population never empties, so no slot is skipped")

	require.InDelta(t, 0.6, float64(counts[OpUpdate])/float64(total), 0.03)
	require.InDelta(t, 0.3, float64(counts[OpInsert])/float64(total), 0.03)
	require.InDelta(t, 0.1, float64(counts[OpDelete])/float64(total), 0.03)
}

func TestBatchOfFiftyAgainstHundredRecords(t *testing.T) {
	faker := gofakeit.New(1)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	pop := seedPopulation(100)

	events, err := g.GenerateBatch(pop, f, 0, 50)
	require.NoError(t, err)
	// The population starts at 100 and at most 50 draws are deletes, so it
	// can never empty and every change index emits an event.
	require.Len(t, events, 50)
}

func TestEmptyPopulationFallsBackToInsertAndSkipsDeletes(t *testing.T) {
	faker := gofakeit.New(3)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}

	// Start every batch from a fresh empty population. Delete rolls against
	// an empty population skip their slot, so across enough batches the
	// emitted total must fall short of the slot total.
	const batches, changes = 200, 20
	total := 0
	for b := 0; b < batches; b++ {
		pop := NewPopulation("widgets", nil)
		events, err := g.GenerateBatch(pop, f, b, changes)
		require.NoError(t, err)
		require.LessOrEqual(t, len(events), changes)

		inserts, deletes := 0, 0
		prev := int64(-1)
		for _, e := range events {
			require.Greater(t, e.SequenceNumber, prev)
			prev = e.SequenceNumber
			switch e.Operation {
			case OpInsert:
				inserts++
			case OpDelete:
				deletes++
			}
		}
		require.Equal(t, inserts-deletes, pop.Len())
		total += len(events)
	}
	require.Less(t, total, batches*changes, "delete rolls against empty populations must leave gaps")
}

func TestInsertedRecordsVisibleToLaterDraws(t *testing.T) {
	faker := gofakeit.New(5)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	pop := NewPopulation("widgets", nil)

	events, err := g.GenerateBatch(pop, f, 0, 500)
	require.NoError(t, err)

	sawUpdate := false
	for _, e := range events {
		if e.Operation == OpUpdate {
			sawUpdate = true
			// Every updatable record came from an insert earlier in the run.
			require.Contains(t, e.Payload.(*widget).WidgetID, "w")
		}
	}
	require.True(t, sawUpdate, "records inserted earlier in the batch must be eligible for update")
}

func TestDeletePrunesPopulation(t *testing.T) {
	faker := gofakeit.New(11)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	pop := seedPopulation(100)

	events, err := g.GenerateBatch(pop, f, 0, 200)
	require.NoError(t, err)

	inserts, deletes := 0, 0
	for _, e := range events {
		switch e.Operation {
		case OpInsert:
			inserts++
		case OpDelete:
			deletes++
		}
	}
	require.Equal(t, 100+inserts-deletes, pop.Len())
}

func TestChangeCountMustFitInStride(t *testing.T) {
	faker := gofakeit.New(9)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}

	_, err := g.GenerateBatch(seedPopulation(1), f, 0, SequenceStride)
	require.Error(t, err)

	_, err = g.GenerateBatch(seedPopulation(1), f, -1, 10)
	require.Error(t, err)
}

func TestChangeTimestampsFollowSequenceOrder(t *testing.T) {
	faker := gofakeit.New(13)
	g := NewGenerator(faker)
	f := &widgetFactory{faker: faker}
	pop := seedPopulation(50)

	events, err := g.GenerateBatch(pop, f, 2, 40)
	require.NoError(t, err)

	var prev time.Time
	for i, e := range events {
		ts, err := time.Parse("2006-01-02T15:04:05", e.ChangeTimestamp)
		require.NoError(t, err)
		if i > 0 {
			require.True(t, ts.After(prev), "timestamps must advance with the sequence")
		}
		prev = ts
	}
}
