package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
	"github.com/Astemirdum/library-lending/pkg/kafka"
	"github.com/Astemirdum/library-lending/pkg/serializer"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	pub := kafka.NewPublisher(producer, "")

	event := kafka.NewLendingEvent(kafka.EventBookBorrowed, time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC))
	event.BorrowID, event.UserID, event.BookID = 1, 2, 3
	event.DueDate = event.Timestamp.AddDate(0, 0, 14)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, kafka.DefaultLendingTopic, msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "3", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got kafka.LendingEvent
		require.NoError(t, serializer.Unmarshal(value, &got))
		require.Equal(t, event, got)
		return nil
	})

	require.NoError(t, pub.Publish(context.Background(), event))
	require.NoError(t, pub.Close())
}

func TestPublisher_PublishBrokerDown(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	pub := kafka.NewPublisher(producer, "lending-test")
	errBroker := errors.New("broker down")

	// 10 failures out of a 20-call window trip the breaker; the 11th send never reaches the producer.
	for i := 0; i < 10; i++ {
		producer.ExpectSendMessageAndFail(errBroker)
	}
	event := kafka.NewLendingEvent(kafka.EventBookReturned, time.Now().UTC())
	for i := 0; i < 10; i++ {
		require.ErrorIs(t, pub.Publish(context.Background(), event), errBroker)
	}
	require.ErrorIs(t, pub.Publish(context.Background(), event), circuit_breaker.ErrOpen)
	require.NoError(t, pub.Close())
}
