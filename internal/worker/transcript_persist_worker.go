package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"disputedesk/internal/model"
	"disputedesk/internal/platform/rabbitmq"
)

type TranscriptWriter interface {
	Create(ctx context.Context, msg *model.TranscriptMessage) error
}

// TranscriptPersistWorker drains the archive queue into MySQL.
type TranscriptPersistWorker struct {
	conn      *amqp.Connection
	repo      TranscriptWriter
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTranscriptPersistWorker(conn *amqp.Connection, repo TranscriptWriter, queueName string) *TranscriptPersistWorker {
	return &TranscriptPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *TranscriptPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	slog.InfoContext(ctx, "transcript worker started", "queue", w.queueName)
	return nil
}

func (w *TranscriptPersistWorker) handle(ctx context.Context, d amqp.Delivery) {
	msg, err := Decode(d.Body)
	if err != nil {
		slog.ErrorContext(ctx, "worker decode transcript failed", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := w.repo.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "worker persist transcript failed",
			"session_id", msg.SessionID, "error", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

func (w *TranscriptPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// Decode parses one queued transcript message and rejects incomplete ones.
func Decode(body []byte) (*model.TranscriptMessage, error) {
	var msg model.TranscriptMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal transcript message failed: %w", err)
	}
	if msg.SessionID == "" || msg.Role == "" {
		return nil, fmt.Errorf("transcript message missing session or role")
	}
	// Row ids are assigned by the database.
	msg.ID = 0
	return &msg, nil
}
