package main

import (
	"context"
	"fmt"
	"lakegen/gen"
	"lakegen/olist"
	"lakegen/sink"
	"lakegen/sink/csvfile"
	"lakegen/sink/kafka"
	"lakegen/sink/kinesis"
	"lakegen/sink/mysql"
	"lakegen/sink/postgres"
	"lakegen/sink/pulsar"
	"lakegen/sink/s3"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/ratelimit"
)

func createSink(ctx context.Context, cfg gen.GeneratorConfig) (sink.Sink, error) {
	if cfg.Sink == "csv" {
		return csvfile.OpenCsvSink(cfg.Csv)
	} else if cfg.Sink == "postgres" {
		return postgres.OpenPostgresSink(cfg.Postgres)
	} else if cfg.Sink == "mysql" {
		return mysql.OpenMysqlSink(cfg.Mysql)
	} else if cfg.Sink == "kafka" {
		return kafka.OpenKafkaSink(ctx, cfg.Kafka)
	} else if cfg.Sink == "pulsar" {
		return pulsar.OpenPulsarSink(ctx, cfg.Pulsar)
	} else if cfg.Sink == "kinesis" {
		return kinesis.OpenKinesisSink(cfg.Kinesis)
	} else if cfg.Sink == "s3" {
		return s3.OpenS3Sink(cfg.S3)
	} else {
		return nil, fmt.Errorf("invalid sink type: %s", cfg.Sink)
	}
}

func newRateLimiter(qps int) ratelimit.Limiter {
	if qps <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(qps, ratelimit.WithoutSlack) // per second
}

// generateLoad runs one full generation: the initial load, then the CDC
// batches, feeding every row through the configured sink.
func generateLoad(ctx context.Context, cfg gen.GeneratorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	sinkImpl, err := createSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sinkImpl.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close sink")
		}
	}()

	loadGen := olist.NewOlistGen(cfg)
	if err := sinkImpl.Prepare(loadGen.SinkTopics()); err != nil {
		return err
	}

	initTime := time.Now()
	count, err := writeRecords(ctx, cfg, sinkImpl, loadGen)
	if err != nil {
		return err
	}
	log.Info().Msgf("Run complete: %d records written (Elapsed: %s)", count, time.Since(initTime).String())
	return nil
}

// writeRecords feeds every record the generator produces through the sink.
// The generator runs in its own goroutine; cancelling the derived context on
// the way out unblocks it if a sink write fails mid-run.
func writeRecords(ctx context.Context, cfg gen.GeneratorConfig, sinkImpl sink.Sink, loadGen gen.LoadGenerator) (int64, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outCh := make(chan sink.SinkRecord, 1000)
	genErrCh := make(chan error, 1)
	go func() {
		genErrCh <- loadGen.Load(ctx, outCh)
		close(outCh)
	}()

	count := int64(0)
	initTime := time.Now()
	prevTime := time.Now()
	rl := newRateLimiter(cfg.Qps)
	for record := range outCh {
		if cfg.PrintInsert {
			fmt.Println(record.ToPostgresSql())
		}
		if err := sinkImpl.WriteRecord(ctx, cfg.Format, record); err != nil {
			return count, err
		}
		_ = rl.Take()
		count++
		if time.Since(prevTime) >= 10*time.Second {
			log.Info().Msgf("Written %d records in total (Elapsed: %s)", count, time.Since(initTime).String())
			prevTime = time.Now()
		}
	}
	if err := <-genErrCh; err != nil {
		return count, err
	}
	return count, nil
}
