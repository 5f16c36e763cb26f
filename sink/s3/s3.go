package s3

import (
	"bytes"
	"context"
	"fmt"
	"lakegen/sink"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Config struct {
	Bucket string
	Region string
}

// S3Sink buffers records per topic and uploads one newline-delimited JSON
// object per topic on Close.
type S3Sink struct {
	buffers map[string]*bytes.Buffer
	client  *s3.S3
	cfg     S3Config
}

func OpenS3Sink(cfg S3Config) (*S3Sink, error) {
	ss := session.Must(session.NewSession())
	client := s3.New(ss, aws.NewConfig().WithRegion(cfg.Region))
	return &S3Sink{
		buffers: make(map[string]*bytes.Buffer),
		client:  client,
		cfg:     cfg,
	}, nil
}

func (p *S3Sink) Prepare(topics []string) error {
	return nil
}

func (p *S3Sink) Close() error {
	return p.Flush()
}

func (p *S3Sink) WriteRecord(ctx context.Context, format string, record sink.SinkRecord) error {
	topic, _, data := sink.RecordToKafka(record, format)
	buf, ok := p.buffers[topic]
	if !ok {
		buf = &bytes.Buffer{}
		p.buffers[topic] = buf
	}

	if _, err := buf.Write(data); err != nil {
		return fmt.Errorf("failed to write record to buffer: %s", err)
	}
	if err := buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write new-line to buffer: %s", err)
	}
	return nil
}

func (p *S3Sink) Flush() error {
	ts := time.Now().UnixMilli()
	for topic, buf := range p.buffers {
		name := fmt.Sprintf("%s-%d.ndjson", topic, ts)
		_, err := p.client.PutObject(&s3.PutObjectInput{
			Bucket: aws.String(p.cfg.Bucket),
			Key:    aws.String(name),
			Body:   bytes.NewReader(buf.Bytes()),
		})
		if err != nil {
			return fmt.Errorf("failed to put object to s3: %s", err)
		}
	}
	return nil
}
