package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
	"github.com/Astemirdum/library-lending/pkg/serializer"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// Publisher sends lending events synchronously. Once the broker keeps failing,
// the circuit breaker short-circuits sends so requests are not held up.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	if topic == "" {
		topic = DefaultLendingTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(20, 30*time.Second, 0.5, 3),
	}
}

func (p *Publisher) Publish(_ context.Context, event LendingEvent) error {
	data, err := serializer.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal lending event")
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.Itoa(event.BookID)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}
	return p.cb.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
