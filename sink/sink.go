package sink

import (
	"context"
)

type SinkRecord interface {
	// Convert the record to an INSERT INTO command.
	ToPostgresSql() string

	// Convert the record to a Kafka message in JSON format.
	// This interface will also be used for Pulsar and Kinesis.
	ToJson() (topic string, key string, data []byte)

	// Convert the record to a Kafka message in Avro format.
	// This interface will also be used for Pulsar and Kinesis.
	ToAvro() (topic string, key string, data []byte)

	// Convert the record to one CSV row. The path names the file the row
	// belongs to, relative to the data root and without the extension.
	ToCsv() (path string, header []string, row []string)
}

type BaseSinkRecord struct {
}

func (r BaseSinkRecord) ToPostgresSql() string {
	panic("not implemented")
}

func (r BaseSinkRecord) ToJson() (topic string, key string, data []byte) {
	panic("not implemented")
}

func (r BaseSinkRecord) ToAvro() (topic string, key string, data []byte) {
	panic("not implemented")
}

func (r BaseSinkRecord) ToCsv() (path string, header []string, row []string) {
	panic("not implemented")
}

// Convert the record to a message in the given format.
// Used by the message-queue sinks.
func RecordToKafka(r SinkRecord, format string) (topic string, key string, data []byte) {
	if format == "json" {
		return r.ToJson()
	} else if format == "avro" {
		return r.ToAvro()
	} else {
		panic("unsupported format")
	}
}

type Sink interface {
	Prepare(topics []string) error

	WriteRecord(ctx context.Context, format string, record SinkRecord) error

	Close() error
}
