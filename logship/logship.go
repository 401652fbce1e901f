// Package logship moves request log entries from Kafka into Elasticsearch.
package logship

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go_trial/foodhub/middleware/logkafka"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBatchSize    = 100
	DefaultBatchTimeout = 5 * time.Second
	DefaultIndex        = "logs"

	retryDelay = time.Second
)

// Reader is the subset of *kafka.Reader the shipper needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaReader(brokers []string, topic, group string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
}

// Indexer stores a batch of JSON documents.
type Indexer interface {
	Index(ctx context.Context, docs [][]byte) error
}

type ESIndexer struct {
	client *elasticsearch.Client
	index  string
}

func NewESIndexer(url, index string) (*ESIndexer, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	if index == "" {
		index = DefaultIndex
	}
	return &ESIndexer{client: client, index: index}, nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
	} `json:"items"`
}

// Index sends docs in a single bulk request.
func (e *ESIndexer) Index(ctx context.Context, docs [][]byte) error {
	var buf bytes.Buffer
	for _, doc := range docs {
		buf.WriteString("{\"index\":{}}\n")
		buf.Write(doc)
		buf.WriteByte('\n')
	}
	res, err := e.client.Bulk(bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.index),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}

	var body bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return fmt.Errorf("bulk response: %w", err)
	}
	if body.Errors {
		failed := 0
		for _, item := range body.Items {
			for _, result := range item {
				if result.Status >= 300 {
					failed++
				}
			}
		}
		return fmt.Errorf("bulk index: %d of %d documents rejected", failed, len(docs))
	}
	return nil
}

type Shipper struct {
	Reader       Reader
	Indexer      Indexer
	BatchSize    int
	BatchTimeout time.Duration

	now func() time.Time
}

func NewShipper(reader Reader, indexer Indexer) *Shipper {
	return &Shipper{
		Reader:       reader,
		Indexer:      indexer,
		BatchSize:    DefaultBatchSize,
		BatchTimeout: DefaultBatchTimeout,
		now:          time.Now,
	}
}

type batch struct {
	docs     [][]byte
	messages []kafka.Message
	started  time.Time
}

func (b *batch) reset() {
	b.docs = b.docs[:0]
	b.messages = b.messages[:0]
}

// Run ships until ctx is cancelled, flushing when a batch fills or its
// timeout passes. Offsets are committed only after a successful flush.
func (s *Shipper) Run(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{"batch_size": s.BatchSize, "batch_timeout": s.BatchTimeout}).Info("log shipper started")
	b := &batch{}

	for {
		fetchCtx, cancel := ctx, context.CancelFunc(func() {})
		if len(b.messages) > 0 {
			fetchCtx, cancel = context.WithDeadline(ctx, b.started.Add(s.BatchTimeout))
		}
		m, err := s.Reader.FetchMessage(fetchCtx)
		cancel()

		switch {
		case err == nil:
			if len(b.messages) == 0 {
				b.started = s.now()
			}
			s.add(b, m)
			if len(b.messages) >= s.BatchSize {
				s.flush(ctx, b)
			}
		case ctx.Err() != nil:
			drain, stop := context.WithTimeout(context.Background(), s.BatchTimeout)
			s.flush(drain, b)
			stop()
			logrus.Info("log shipper stopped")
			return nil
		case errors.Is(err, context.DeadlineExceeded):
			s.flush(ctx, b)
		case errors.Is(err, io.EOF):
			return err
		default:
			logrus.WithError(err).Warn("kafka fetch failed")
			select {
			case <-ctx.Done():
			case <-time.After(retryDelay):
			}
		}
	}
}

// add keeps undecodable messages in the batch so their offsets still commit.
func (s *Shipper) add(b *batch, m kafka.Message) {
	b.messages = append(b.messages, m)

	var entry logkafka.LogEntry
	if err := json.Unmarshal(m.Value, &entry); err != nil {
		logrus.WithError(err).WithField("offset", m.Offset).Warn("skipping undecodable log entry")
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	doc, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Warn("re-encode log entry")
		return
	}
	b.docs = append(b.docs, doc)
}

func (s *Shipper) flush(ctx context.Context, b *batch) {
	if len(b.messages) == 0 {
		return
	}
	defer b.reset()

	if len(b.docs) > 0 {
		if err := s.Indexer.Index(ctx, b.docs); err != nil {
			logrus.WithError(err).WithField("count", len(b.docs)).Error("log batch not indexed")
			return
		}
	}
	if err := s.Reader.CommitMessages(ctx, b.messages...); err != nil {
		logrus.WithError(err).Warn("commit log offsets")
		return
	}
	logrus.WithField("count", len(b.docs)).Debug("log batch shipped")
}
