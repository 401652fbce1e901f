package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go_trial/foodhub/config"
	"go_trial/foodhub/logship"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	cfg.ConfigureLogging()
	if len(cfg.KafkaBrokers) == 0 {
		logrus.Fatal("KAFKA_BROKERS must be set for the log shipper")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := logship.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaLogTopic, cfg.KafkaLogGroup)
	defer reader.Close()

	indexer, err := logship.NewESIndexer(cfg.ElasticsearchURL, cfg.LogIndex)
	if err != nil {
		logrus.WithError(err).Fatal("elasticsearch")
	}

	logrus.WithFields(logrus.Fields{
		"topic": cfg.KafkaLogTopic,
		"index": cfg.LogIndex,
	}).Info("starting kafka to elasticsearch pusher")
	if err := logship.NewShipper(reader, indexer).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("log shipper stopped")
	}
}
