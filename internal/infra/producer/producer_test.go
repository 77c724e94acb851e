package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	mock_producer "github.com/RoyceAzure/lab/foodorder/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestProduce(t *testing.T) {
	testCases := []struct {
		name       string
		setUpMock  func(w *mock_producer.MockWriter)
		checkError func(t *testing.T, err error)
	}{
		{
			name: "write ok",
			setUpMock: func(w *mock_producer.MockWriter) {
				w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil).Times(1)
			},
			checkError: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "temporary error retried",
			setUpMock: func(w *mock_producer.MockWriter) {
				gomock.InOrder(
					w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.LeaderNotAvailable),
					w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.RequestTimedOut),
					w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			checkError: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "fatal error not retried",
			setUpMock: func(w *mock_producer.MockWriter) {
				w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("topic authorization failed")).Times(1)
			},
			checkError: func(t *testing.T, err error) {
				var kErr *KafkaError
				require.ErrorAs(t, err, &kErr)
				require.Equal(t, "Produce", kErr.Operation)
				require.Equal(t, "order-events", kErr.Topic)
			},
		},
		{
			name: "retries exhausted",
			setUpMock: func(w *mock_producer.MockWriter) {
				w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(kafka.LeaderNotAvailable).Times(4)
			},
			checkError: func(t *testing.T, err error) {
				require.ErrorIs(t, err, kafka.LeaderNotAvailable)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			w := mock_producer.NewMockWriter(ctrl)
			tc.setUpMock(w)

			p := NewWithWriter(w, DefaultConfig([]string{"localhost:9092"}, "order-events"))
			err := p.Produce(context.Background(), kafka.Message{Key: []byte("k"), Value: []byte("v")})
			tc.checkError(t, err)
		})
	}
}

func TestProducerClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := mock_producer.NewMockWriter(ctrl)
	w.EXPECT().Close().Return(nil).Times(1)

	p := NewWithWriter(w, DefaultConfig([]string{"localhost:9092"}, "order-events"))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Produce(context.Background(), kafka.Message{Value: []byte("v")})
	require.ErrorIs(t, err, ErrProducerClosed)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(DefaultConfig(nil, "order-events"))
	require.ErrorIs(t, err, ErrInvalidateParameter)

	_, err = New(DefaultConfig([]string{"localhost:9092"}, ""))
	require.ErrorIs(t, err, ErrInvalidateParameter)
}

func TestOrderEventPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var sent []kafka.Message
	w := mock_producer.NewMockWriter(ctrl)
	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, msgs ...kafka.Message) error {
			sent = append(sent, msgs...)
			return nil
		},
	)

	publisher := NewOrderEventPublisher(NewWithWriter(w, DefaultConfig([]string{"localhost:9092"}, "order-events")))
	order := &model.Order{ID: "o1", RestaurantID: "r1", UserID: "u1", TotalAmount: 1300, Currency: "inr", Status: model.OrderStatusConfirmed}
	require.NoError(t, publisher.Publish(context.Background(), model.NewOrderEvent(model.OrderConfirmedEventName, order, model.OrderStatusPending)))

	require.Len(t, sent, 1)
	require.Equal(t, []byte("o1"), sent[0].Key)

	var evt model.OrderEvent
	require.NoError(t, json.Unmarshal(sent[0].Value, &evt))
	require.Equal(t, model.OrderConfirmedEventName, evt.EventType)
	require.Equal(t, model.OrderStatusPending, evt.FromStatus)
	require.Equal(t, model.OrderStatusConfirmed, evt.ToStatus)
	require.EqualValues(t, 1300, evt.TotalAmount)
}
