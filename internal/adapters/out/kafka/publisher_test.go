package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"fulfillment/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func TestPublish_WritesJSONEncodedEventToTopic(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).Once()

	publisher := &EventPublisher{writer: writer}

	event := ports.StoreAssignedEvent{
		OrderID: "c2a7f8b0-0000-4000-8000-000000000001",
		StoreID: "c2a7f8b0-0000-4000-8000-000000000002",
	}

	err := publisher.Publish(context.Background(), ports.TopicStoreAssigned, event)
	require.NoError(t, err)

	messages, ok := writer.Calls[0].Arguments[1].([]kafkago.Message)
	require.True(t, ok)
	require.Len(t, messages, 1)

	assert.Equal(t, ports.TopicStoreAssigned, messages[0].Topic)

	var decoded ports.StoreAssignedEvent
	require.NoError(t, json.Unmarshal(messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)

	writer.AssertExpectations(t)
}

func TestPublish_WriterFailure_ReturnsError(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	publisher := &EventPublisher{writer: writer}

	err := publisher.Publish(context.Background(), ports.TopicOrderCancelled, ports.OrderCancelledEvent{})
	require.ErrorIs(t, err, assert.AnError)
}

func TestPublish_NoBrokersConfigured_ReturnsErrDisabled(t *testing.T) {
	publisher := NewEventPublisher("")

	err := publisher.Publish(context.Background(), ports.TopicStoreAssigned, ports.StoreAssignedEvent{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestNewEventPublisher_TrimsAndFiltersBrokerList(t *testing.T) {
	publisher := NewEventPublisher(" localhost:9092 , , broker-2:9092 ")

	require.NotNil(t, publisher.writer)

	writer, ok := publisher.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "localhost:9092,broker-2:9092", writer.Addr.String())
}
