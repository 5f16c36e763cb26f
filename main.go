package main

import (
	"context"
	"lakegen/gen"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
)

var cfg gen.GeneratorConfig = gen.GeneratorConfig{}

func runCommand() error {
	terminateCh := make(chan os.Signal, 1)
	signal.Notify(terminateCh, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-terminateCh
		log.Info().Msg("Cancelled")
		cancel()
	}()
	return generateLoad(ctx, cfg)
}

func main() {
	app := &cli.App{
		Commands: []cli.Command{
			{
				Name: "csv",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "data-dir",
						Usage:       "The root directory the per-entity CSV trees are written under",
						Required:    false,
						Value:       "data/olist",
						Destination: &cfg.Csv.DataDir,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "csv"
					return runCommand()
				},
				HelpName: "lakegen csv",
			},
			{
				Name: "postgres",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "host",
						Usage:       "The host address of the PostgreSQL server",
						Required:    false,
						Value:       "localhost",
						Destination: &cfg.Postgres.DbHost,
					},
					cli.StringFlag{
						Name:        "db",
						Usage:       "The database where the target tables are located",
						Required:    false,
						Value:       "dev",
						Destination: &cfg.Postgres.Database,
					},
					cli.IntFlag{
						Name:        "port",
						Usage:       "The port of the PostgreSQL server",
						Required:    false,
						Value:       5432,
						Destination: &cfg.Postgres.DbPort,
					},
					cli.StringFlag{
						Name:        "user",
						Usage:       "The user to Postgres",
						Required:    false,
						Value:       "root",
						Destination: &cfg.Postgres.DbUser,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "postgres"
					return runCommand()
				},
			},
			{
				Name: "mysql",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "host",
						Usage:       "The host address of the MySQL server",
						Required:    false,
						Value:       "localhost",
						Destination: &cfg.Mysql.DbHost,
					},
					cli.StringFlag{
						Name:        "db",
						Usage:       "The database where the target tables are located",
						Required:    false,
						Value:       "mydb",
						Destination: &cfg.Mysql.Database,
					},
					cli.IntFlag{
						Name:        "port",
						Usage:       "The port of the MySQL server",
						Required:    false,
						Value:       3306,
						Destination: &cfg.Mysql.DbPort,
					},
					cli.StringFlag{
						Name:        "user",
						Usage:       "The user to MySQL",
						Required:    false,
						Value:       "mysqluser",
						Destination: &cfg.Mysql.DbUser,
					},
					cli.StringFlag{
						Name:        "password",
						Usage:       "The password to MySQL",
						Required:    false,
						Value:       "mysqlpw",
						Destination: &cfg.Mysql.DbPassword,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "mysql"
					return runCommand()
				},
			},
			{
				Name: "kafka",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "brokers",
						Usage:       "Kafka bootstrap brokers to connect to, as a comma separated list",
						Required:    true,
						Destination: &cfg.Kafka.Brokers,
					},
					cli.BoolFlag{
						Name:        "no-recreate",
						Usage:       "Do not recreate the Kafka topic when it exists.",
						Required:    false,
						Destination: &cfg.Kafka.NoRecreateIfExists,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "kafka"
					return runCommand()
				},
				HelpName: "lakegen kafka",
			},
			{
				Name: "pulsar",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "brokers",
						Usage:       "Pulsar brokers to connect to, as a comma separated list",
						Required:    true,
						Destination: &cfg.Pulsar.Brokers,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "pulsar"
					return runCommand()
				},
				HelpName: "lakegen pulsar",
			},
			{
				Name: "kinesis",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "region",
						Usage:       "The region where the Kinesis stream resides",
						Required:    true,
						Destination: &cfg.Kinesis.Region,
					},
					cli.StringFlag{
						Name:        "name",
						Usage:       "The Kinesis stream name",
						Required:    true,
						Destination: &cfg.Kinesis.StreamName,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "kinesis"
					return runCommand()
				},
				HelpName: "lakegen kinesis",
			},
			{
				Name: "s3",
				Flags: []cli.Flag{
					cli.StringFlag{
						Name:        "bucket",
						Usage:       "The S3 bucket to upload the generated objects to",
						Required:    true,
						Destination: &cfg.S3.Bucket,
					},
					cli.StringFlag{
						Name:        "region",
						Usage:       "The region where the S3 bucket resides",
						Required:    true,
						Destination: &cfg.S3.Region,
					},
				},
				Action: func(c *cli.Context) error {
					cfg.Sink = "s3"
					return runCommand()
				},
				HelpName: "lakegen s3",
			},
		},
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:        "print",
				Usage:       "Whether to print the content of every row",
				Required:    false,
				Destination: &cfg.PrintInsert,
			},
			cli.IntFlag{
				Name:        "qps",
				Usage:       "Number of rows to write per second. Zero means unthrottled",
				Required:    false,
				Value:       0,
				Destination: &cfg.Qps,
			},
			cli.StringFlag{
				Name:        "format",
				Usage:       "The output record format: json | avro. Used when the sink is a message queue.",
				Value:       "json",
				Required:    false,
				Destination: &cfg.Format,
			},
			cli.Int64Flag{
				Name:        "seed",
				Usage:       "Seed for the fake-data source. Zero means an unseeded run",
				Required:    false,
				Value:       0,
				Destination: &cfg.Seed,
			},
			cli.BoolFlag{
				Name:        "heavytail",
				Usage:       "Whether the tail probability is high. If true monetary values are drawn from a Poisson distribution.",
				Required:    false,
				Destination: &cfg.HeavyTail,
			},
			cli.IntFlag{
				Name:        "customers-min",
				Usage:       "Lower bound of the initial customer count",
				Value:       800,
				Destination: &cfg.Customers.Min,
			},
			cli.IntFlag{
				Name:        "customers-max",
				Usage:       "Upper bound of the initial customer count",
				Value:       1200,
				Destination: &cfg.Customers.Max,
			},
			cli.IntFlag{
				Name:        "products-min",
				Usage:       "Lower bound of the initial product count",
				Value:       400,
				Destination: &cfg.Products.Min,
			},
			cli.IntFlag{
				Name:        "products-max",
				Usage:       "Upper bound of the initial product count",
				Value:       600,
				Destination: &cfg.Products.Max,
			},
			cli.IntFlag{
				Name:        "sellers-min",
				Usage:       "Lower bound of the initial seller count",
				Value:       80,
				Destination: &cfg.Sellers.Min,
			},
			cli.IntFlag{
				Name:        "sellers-max",
				Usage:       "Upper bound of the initial seller count",
				Value:       120,
				Destination: &cfg.Sellers.Max,
			},
			cli.IntFlag{
				Name:        "orders-min",
				Usage:       "Lower bound of the initial order count",
				Value:       4000,
				Destination: &cfg.Orders.Min,
			},
			cli.IntFlag{
				Name:        "orders-max",
				Usage:       "Upper bound of the initial order count",
				Value:       6000,
				Destination: &cfg.Orders.Max,
			},
			cli.IntFlag{
				Name:        "cdc-batches",
				Usage:       "Number of CDC batches to generate after the initial load",
				Value:       3,
				Destination: &cfg.CdcBatches,
			},
			cli.IntFlag{
				Name:        "changes-min",
				Usage:       "Lower bound of the per-batch change count",
				Value:       40,
				Destination: &cfg.CdcChanges.Min,
			},
			cli.IntFlag{
				Name:        "changes-max",
				Usage:       "Upper bound of the per-batch change count",
				Value:       60,
				Destination: &cfg.CdcChanges.Max,
			},
			cli.Float64Flag{
				Name:        "bad-rate",
				Usage:       "Fraction of records corrupted for data-quality testing",
				Value:       0.02,
				Destination: &cfg.BadDataRate,
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}
