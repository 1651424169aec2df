package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

var ErrPublish = errors.New("events: publish failed")

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"

	batchTimeout = 10 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// Writer часть *kafka.Writer, используемая публикатором
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события жизненного цикла бронирований в Kafka
type Publisher struct {
	writer Writer
	topic  string
	now    func() time.Time
}

// NewPublisher создает публикатор. Без брокеров возвращается публикатор, который ничего не отправляет.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{now: time.Now}
	}

	return NewPublisherWithWriter(newKafkaWriter(brokers, topic), topic)
}

// newKafkaWriter синхронный writer: Publish вызывается в запросе, поэтому батч отправляется
// сразу, а не ждет BatchTimeout по умолчанию (1s)
func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
}

func NewPublisherWithWriter(writer Writer, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic, now: time.Now}
}

// Enabled false, если брокеры не настроены
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// Publish отправляет по событию на каждое бронирование одним батчем.
// Ключ сообщения - id бронирования, чтобы события одного бронирования шли по порядку.
func (p *Publisher) Publish(ctx context.Context, eventType string, bookings ...*domain.Booking) error {
	if p.writer == nil || len(bookings) == 0 {
		return nil
	}

	at := p.now().UTC()
	msgs := make([]kafka.Message, 0, len(bookings))

	for _, b := range bookings {
		payload, err := json.Marshal(domain.NewBookingEvent(eventType, b, at))
		if err != nil {
			return fmt.Errorf("%w: marshal %s: %v", ErrPublish, b.ID, err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(b.ID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: headerEventID, Value: []byte(uuid.NewString())},
				{Key: headerEventType, Value: []byte(eventType)},
			},
			Time: at,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
