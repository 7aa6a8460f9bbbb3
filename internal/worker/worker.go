package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"channelfeed/internal/config"
	"channelfeed/internal/logger"
	"channelfeed/internal/webhook"
	"channelfeed/internal/worker/processors"
)

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.EventProcessor
}

func New(cfg *config.Config, log *logger.Logger, notifier *webhook.Notifier) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    log,
		reader:    reader,
		processor: processors.NewEventProcessor(notifier, log),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Worker started, listening for product events...")

	for {
		message, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var event processors.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if err := w.processor.Process(ctx, event); err != nil {
			w.logger.Error("Failed to process %s event: %v", event.Type, err)
			continue
		}

		w.logger.Debug("Processed %s event for %q", event.Type, event.Number)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
