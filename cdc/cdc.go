package cdc

import (
	"fmt"
	"lakegen/gen"
	"lakegen/sink"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/linkedin/goavro/v2"
)

type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// SequenceStride partitions sequence numbers by batch. It must exceed the
// change count of any single batch so that batch N's numbers all precede
// batch N+1's.
const SequenceStride = 10000

// Record is one row of a mutable entity population. Implementations are the
// per-entity structs, so field access stays compile-time checked instead of
// going through untyped maps.
type Record interface {
	sink.SinkRecord

	// Clone returns an independent copy for use as an event payload.
	Clone() Record

	// AvroNative returns the record's columns as goavro native values.
	AvroNative() map[string]interface{}

	// EventCodec returns the Avro codec covering the record's columns plus
	// the change-event wrapper columns.
	EventCodec() *goavro.Codec
}

// Factory synthesizes and mutates records of one entity kind.
type Factory interface {
	// New builds a brand-new record, same rules as the initial load.
	New() Record

	// Update mutates the kind's mutable fields in place. The primary key is
	// left untouched.
	Update(Record)
}

// Population is the evolving set of current records of one entity kind.
type Population struct {
	name    string
	records []Record
}

func NewPopulation(name string, records []Record) *Population {
	return &Population{name: name, records: records}
}

func (p *Population) Name() string {
	return p.name
}

func (p *Population) Len() int {
	return len(p.records)
}

// Insert appends a record, making it visible to later draws.
func (p *Population) Insert(r Record) {
	p.records = append(p.records, r)
}

// pick returns a uniformly random member.
func (p *Population) pick(faker *gofakeit.Faker) Record {
	return p.records[faker.IntRange(0, len(p.records)-1)]
}

// remove takes a uniformly random member out of the population and returns
// it. Deleted records are pruned so later draws cannot resurrect them.
func (p *Population) remove(faker *gofakeit.Faker) Record {
	i := faker.IntRange(0, len(p.records)-1)
	r := p.records[i]
	p.records[i] = p.records[len(p.records)-1]
	p.records = p.records[:len(p.records)-1]
	return r
}

// Generator emits batches of ordered change events against a population.
type Generator struct {
	faker *gofakeit.Faker
	// anchor is the wall-clock base every batch's timestamps offset from.
	anchor time.Time
}

func NewGenerator(faker *gofakeit.Faker) *Generator {
	return &Generator{
		faker:  faker,
		anchor: time.Now(),
	}
}

// GenerateBatch produces up to changeCount change events for one batch,
// mutating the population as it goes. Updates land on the live population
// record, so later draws see the new values. Operations are drawn as 60% UPDATE,
// 30% INSERT, 10% DELETE. An UPDATE against an empty population falls back
// to INSERT; a DELETE against an empty population skips the change index,
// leaving a tolerated gap in the sequence numbers.
//
// Changes are processed strictly in index order: a record INSERTed at index
// i is eligible for selection at every index j > i.
func (g *Generator) GenerateBatch(pop *Population, f Factory, batchIndex, changeCount int) ([]*Event, error) {
	if batchIndex < 0 {
		return nil, fmt.Errorf("batch index must not be negative: %d", batchIndex)
	}
	if changeCount >= SequenceStride {
		return nil, fmt.Errorf("change count %d exceeds the sequence stride %d", changeCount, SequenceStride)
	}

	baseSeq := int64(batchIndex) * SequenceStride
	baseTime := g.anchor.Add(time.Duration(batchIndex) * time.Hour)

	events := make([]*Event, 0, changeCount)
	for i := 0; i < changeCount; i++ {
		var op Operation
		var rec Record
		switch roll := g.faker.Float64Range(0, 1); {
		case roll < 0.6 && pop.Len() > 0:
			op = OpUpdate
			live := pop.pick(g.faker)
			f.Update(live)
			rec = live.Clone()
		case roll < 0.9:
			op = OpInsert
			rec = f.New()
			pop.Insert(rec)
		default:
			if pop.Len() == 0 {
				continue
			}
			op = OpDelete
			rec = pop.remove(g.faker).Clone()
		}

		events = append(events, &Event{
			SequenceNumber:  baseSeq + int64(i),
			Operation:       op,
			ChangeTimestamp: baseTime.Add(time.Duration(i) * time.Second).Format(gen.TimestampLayout),
			Batch:           batchIndex,
			Payload:         rec,
		})
	}
	return events, nil
}
