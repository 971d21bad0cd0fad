package chunk_queue

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AnishMulay/scatterstore/internal/log_service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPChunkQueue is both publisher and consumer over a RabbitMQ connection.
// The queue is durable and consumed with prefetch 1 and manual acks.
type AMQPChunkQueue struct {
	url string
	ls  log_service.LogService

	conn    *amqp.Connection
	channel *amqp.Channel

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAMQPChunkQueue(url string, ls log_service.LogService) (*AMQPChunkQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		ls.Error(log_service.LogEvent{
			Message:  "Failed to connect to broker",
			Metadata: map[string]any{"error": err.Error()},
		})
		return nil, ErrBrokerConnectFailed
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, ErrBrokerConnectFailed
	}

	if _, err := channel.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		ls.Error(log_service.LogEvent{
			Message:  "Failed to declare queue",
			Metadata: map[string]any{"queue": QueueName, "error": err.Error()},
		})
		return nil, ErrQueueDeclareFailed
	}

	if err := channel.Qos(1, 0, false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, ErrBrokerConnectFailed
	}

	ctx, cancel := context.WithCancel(context.Background())

	ls.Info(log_service.LogEvent{
		Message:  "Connected to broker",
		Metadata: map[string]any{"queue": QueueName},
	})

	return &AMQPChunkQueue{
		url:     url,
		ls:      ls,
		conn:    conn,
		channel: channel,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (q *AMQPChunkQueue) PublishChunk(ctx context.Context, msg ChunkMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return ErrPublishFailed
	}

	err = q.channel.PublishWithContext(ctx, "", QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		q.ls.Error(log_service.LogEvent{
			Message:  "Failed to publish chunk message",
			Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "error": err.Error()},
		})
		return ErrPublishFailed
	}

	q.ls.Debug(log_service.LogEvent{
		Message:  "Published chunk message",
		Metadata: map[string]any{"fileId": msg.FileID, "chunkId": msg.ChunkID, "size": len(msg.Data)},
	})
	return nil
}

func (q *AMQPChunkQueue) Start(handler DeliveryHandler) error {
	deliveries, err := q.channel.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		q.ls.Error(log_service.LogEvent{
			Message:  "Failed to start consuming",
			Metadata: map[string]any{"queue": QueueName, "error": err.Error()},
		})
		return ErrConsumeFailed
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-q.ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					q.ls.Warn(log_service.LogEvent{Message: "Broker delivery channel closed"})
					return
				}
				delivery := Delivery{
					Body: d.Body,
					Ack:  func() error { return d.Ack(false) },
					Nack: func(requeue bool) error { return d.Nack(false, requeue) },
				}
				handler(q.ctx, delivery)
			}
		}
	}()

	q.ls.Info(log_service.LogEvent{
		Message:  "Chunk consumer started",
		Metadata: map[string]any{"queue": QueueName},
	})
	return nil
}

func (q *AMQPChunkQueue) Stop() error {
	q.cancel()
	q.wg.Wait()

	if err := q.channel.Close(); err != nil {
		return err
	}
	return q.conn.Close()
}
