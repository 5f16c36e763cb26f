package gen

import (
	"context"
	"fmt"
	"lakegen/sink"
	"lakegen/sink/csvfile"
	"lakegen/sink/kafka"
	"lakegen/sink/kinesis"
	"lakegen/sink/mysql"
	"lakegen/sink/postgres"
	"lakegen/sink/pulsar"
	"lakegen/sink/s3"

	"github.com/brianvoe/gofakeit/v6"
	"gonum.org/v1/gonum/stat/distuv"
)

type GeneratorConfig struct {
	Csv      csvfile.CsvConfig
	Postgres postgres.PostgresConfig
	Mysql    mysql.MysqlConfig
	Kafka    kafka.KafkaConfig
	Pulsar   pulsar.PulsarConfig
	Kinesis  kinesis.KinesisConfig
	S3       s3.S3Config

	// Whether to print the content of every event.
	PrintInsert bool
	// The sink type.
	Sink string
	// The throttled requests-per-second.
	Qps int
	// The record format, used when the sink is a message queue.
	Format string

	// Seed for the fake-data source. Zero means an unseeded run.
	Seed int64

	// Whether the tail probability is high.
	// If true, monetary values are drawn from a Poisson distribution
	// instead of the default uniform one.
	HeavyTail bool

	// Initial-load sizing. The actual count is drawn uniformly per run.
	Customers Range
	Products  Range
	Sellers   Range
	Orders    Range

	// CDC sizing.
	CdcBatches int
	CdcChanges Range

	// Fraction of records corrupted for data-quality testing.
	BadDataRate float64
}

// Validate rejects impossible ranges before any generation starts.
func (cfg GeneratorConfig) Validate() error {
	ranges := map[string]Range{
		"customers":   cfg.Customers,
		"products":    cfg.Products,
		"sellers":     cfg.Sellers,
		"orders":      cfg.Orders,
		"cdc-changes": cfg.CdcChanges,
	}
	for name, r := range ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("invalid %s range: %w", name, err)
		}
	}
	if cfg.CdcBatches < 0 {
		return fmt.Errorf("cdc batch count must not be negative: %d", cfg.CdcBatches)
	}
	if cfg.BadDataRate < 0 || cfg.BadDataRate > 1 {
		return fmt.Errorf("bad data rate must be within [0, 1]: %f", cfg.BadDataRate)
	}
	return nil
}

// Range is a closed interval that counts are drawn from.
type Range struct {
	Min int
	Max int
}

func (r Range) Validate() error {
	if r.Min <= 0 {
		return fmt.Errorf("min must be positive: %d", r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("min %d exceeds max %d", r.Min, r.Max)
	}
	return nil
}

func (r Range) Rand(faker *gofakeit.Faker) int {
	return faker.IntRange(r.Min, r.Max)
}

type LoadGenerator interface {
	SinkTopics() []string

	// Load generates the initial load followed by the CDC batches and sends
	// every row to outCh. It returns once the run is complete or ctx is done.
	Load(ctx context.Context, outCh chan<- sink.SinkRecord) error
}

// TimestampLayout is the ISO-8601 layout every emitted timestamp uses.
const TimestampLayout = "2006-01-02T15:04:05"

type RandDist interface {
	// Rand returns a random number ranging from [0, max].
	Rand(max float64) float64
}

func NewRandDist(cfg GeneratorConfig) RandDist {
	if cfg.HeavyTail {
		return PoissonDist{}
	}
	return UniformDist{}
}

type UniformDist struct {
	u map[float64]distuv.Uniform
}

func (ud UniformDist) Rand(max float64) float64 {
	if ud.u == nil {
		ud.u = make(map[float64]distuv.Uniform)
	}
	_, ok := ud.u[max]
	if !ok {
		ud.u[max] = distuv.Uniform{
			Min: 0,
			Max: max,
		}
	}
	return ud.u[max].Rand()
}

// A more real-world distribution. The tail will have lower probability.
type PoissonDist struct {
	ps map[float64]distuv.Poisson
}

func (pd PoissonDist) Rand(max float64) float64 {
	if pd.ps == nil {
		pd.ps = make(map[float64]distuv.Poisson)
	}
	_, ok := pd.ps[max]
	if !ok {
		pd.ps[max] = distuv.Poisson{
			Lambda: max / 2,
		}
	}
	return pd.ps[max].Rand()
}
