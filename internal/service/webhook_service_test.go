package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/payment"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type failingLedger struct{}

func (failingLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingLedger) Mark(ctx context.Context, eventID string) error {
	return errors.New("redis down")
}

type WebhookServiceTestSuite struct {
	suite.Suite
	store     *memStore
	verifier  *fakeVerifier
	ledger    *redis_repo.MemoryEventLedger
	publisher *recordingPublisher
	svc       IWebhookService
	orderID   string
}

func (s *WebhookServiceTestSuite) SetupTest() {
	s.store = newMemStore(testRestaurant())
	s.publisher = &recordingPublisher{}
	s.ledger = redis_repo.NewMemoryEventLedger(time.Hour)

	checkout := NewCheckoutService(s.store, s.store, &fakeGateway{}, s.publisher, CheckoutOptions{FrontendURL: "http://front"})
	res, err := checkout.CreateCheckoutSession(context.Background(), validInput())
	s.Require().NoError(err)
	s.orderID = res.OrderID

	s.verifier = &fakeVerifier{events: map[string]*payment.Event{
		"completed": {ID: "evt_1", Type: payment.EventCheckoutCompleted, OrderID: s.orderID, SessionID: res.SessionID, AmountTotal: 1300},
		"completed-retry": {ID: "evt_2", Type: payment.EventCheckoutCompleted, OrderID: s.orderID, AmountTotal: 9999},
		"zero-amount": {ID: "evt_3", Type: payment.EventCheckoutCompleted, OrderID: s.orderID},
		"no-order": {ID: "evt_4", Type: payment.EventCheckoutCompleted},
		"unknown-order": {ID: "evt_5", Type: payment.EventCheckoutCompleted, OrderID: "missing"},
		"other-type": {ID: "evt_6", Type: "payment_intent.created"},
	}}
	s.svc = NewWebhookService(s.verifier, s.store, s.ledger, s.publisher)
}

func (s *WebhookServiceTestSuite) handle(payload string) (*WebhookResult, error) {
	return s.svc.HandlePaymentEvent(context.Background(), []byte(payload), "valid")
}

func (s *WebhookServiceTestSuite) order() *model.Order {
	order, err := s.store.GetOrderByID(context.Background(), s.orderID)
	s.Require().NoError(err)
	return order
}

func (s *WebhookServiceTestSuite) TestConfirmsPendingOrder() {
	res, err := s.handle("completed")
	s.Require().NoError(err)
	s.Require().Equal(WebhookConfirmed, res.Outcome)

	order := s.order()
	s.Require().Equal(model.OrderStatusConfirmed, order.Status)
	s.Require().Equal(int64(1300), order.TotalAmount)
	s.Require().Equal("evt_1", order.PaymentEventID)
	s.Require().Equal(1, s.publisher.count(model.OrderConfirmedEventName))

	seen, err := s.ledger.Seen(context.Background(), "evt_1")
	s.Require().NoError(err)
	s.Require().True(seen)
}

func (s *WebhookServiceTestSuite) TestDuplicateDeliveryIsNoop() {
	_, err := s.handle("completed")
	s.Require().NoError(err)

	res, err := s.handle("completed")
	s.Require().NoError(err)
	s.Require().Equal(WebhookDuplicate, res.Outcome)
	s.Require().Equal(1, s.store.confirmHits)
	s.Require().Equal(1, s.publisher.count(model.OrderConfirmedEventName))
}

func (s *WebhookServiceTestSuite) TestDifferentEventForConfirmedOrderKeepsAmount() {
	_, err := s.handle("completed")
	s.Require().NoError(err)
	s.store.setStatus(s.orderID, model.OrderStatusDelivered)

	res, err := s.handle("completed-retry")
	s.Require().NoError(err)
	s.Require().Equal(WebhookDuplicate, res.Outcome)

	order := s.order()
	s.Require().Equal(model.OrderStatusDelivered, order.Status)
	s.Require().Equal(int64(1300), order.TotalAmount)
}

func (s *WebhookServiceTestSuite) TestZeroAmountKeepsComputedTotal() {
	res, err := s.handle("zero-amount")
	s.Require().NoError(err)
	s.Require().Equal(WebhookConfirmed, res.Outcome)
	s.Require().Equal(int64(1300), s.order().TotalAmount)
}

func (s *WebhookServiceTestSuite) TestIgnoredEvents() {
	for _, payload := range []string{"no-order", "unknown-order", "other-type"} {
		res, err := s.handle(payload)
		s.Require().NoError(err, payload)
		s.Require().Equal(WebhookIgnored, res.Outcome, payload)
	}
	s.Require().Equal(model.OrderStatusPending, s.order().Status)
}

func (s *WebhookServiceTestSuite) TestSignatureFailure() {
	_, err := s.svc.HandlePaymentEvent(context.Background(), []byte("completed"), "forged")
	s.Require().Error(err)
	s.Require().Equal(apperr.SignatureInvalid, apperr.KindOf(err))
	s.Require().Equal(model.OrderStatusPending, s.order().Status)
}

func (s *WebhookServiceTestSuite) TestMalformedEvent() {
	_, err := s.handle("garbage")
	s.Require().Error(err)
	s.Require().Equal(apperr.ValidationError, apperr.KindOf(err))
}

func (s *WebhookServiceTestSuite) TestStoreFailureIsRetryable() {
	s.store.failConfirm = errors.New("db down")
	_, err := s.handle("completed")
	s.Require().Error(err)
	s.Require().Equal(apperr.Internal, apperr.KindOf(err))

	// 失敗的事件不能記錄到 ledger, 重送時要能處理
	seen, err := s.ledger.Seen(context.Background(), "evt_1")
	s.Require().NoError(err)
	s.Require().False(seen)

	s.store.failConfirm = nil
	res, err := s.handle("completed")
	s.Require().NoError(err)
	s.Require().Equal(WebhookConfirmed, res.Outcome)
}

func (s *WebhookServiceTestSuite) TestLedgerFailureFallsBackToConditionalUpdate() {
	svc := NewWebhookService(s.verifier, s.store, failingLedger{}, s.publisher)
	ctx := context.Background()

	res, err := svc.HandlePaymentEvent(ctx, []byte("completed"), "valid")
	s.Require().NoError(err)
	s.Require().Equal(WebhookConfirmed, res.Outcome)

	res, err = svc.HandlePaymentEvent(ctx, []byte("completed"), "valid")
	s.Require().NoError(err)
	s.Require().Equal(WebhookDuplicate, res.Outcome)
	s.Require().Equal(1, s.store.confirmHits)
}

func (s *WebhookServiceTestSuite) TestConcurrentDeliveriesConfirmOnce() {
	var confirmed atomic.Int32
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			res, err := s.svc.HandlePaymentEvent(ctx, []byte("completed"), "valid")
			if err != nil {
				return err
			}
			if res.Outcome == WebhookConfirmed {
				confirmed.Add(1)
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Require().Equal(int32(1), confirmed.Load())
	s.Require().Equal(1, s.store.confirmHits)
	s.Require().Equal(1, s.publisher.count(model.OrderConfirmedEventName))
	s.Require().Equal(int64(1300), s.order().TotalAmount)
}

func TestWebhookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookServiceTestSuite))
}

func TestWebhookService_NilLedger(t *testing.T) {
	store := newMemStore(testRestaurant())
	order := &model.Order{ID: "o1", RestaurantID: "r1", UserID: "u1", TotalAmount: 800, Currency: "inr", Status: model.OrderStatusPending}
	require.NoError(t, store.CreateOrder(context.Background(), order))

	verifier := &fakeVerifier{events: map[string]*payment.Event{
		"e": {ID: "evt_x", Type: payment.EventCheckoutCompleted, OrderID: "o1", AmountTotal: 800},
	}}
	svc := NewWebhookService(verifier, store, nil, nil)

	res, err := svc.HandlePaymentEvent(context.Background(), []byte("e"), "valid")
	require.NoError(t, err)
	require.Equal(t, WebhookConfirmed, res.Outcome)
}

func TestWebhookService_StalledPublisherStillAcks(t *testing.T) {
	shortPublishTimeout(t, 30*time.Millisecond)

	store := newMemStore(testRestaurant())
	order := &model.Order{ID: "o1", RestaurantID: "r1", UserID: "u1", TotalAmount: 800, Currency: "inr", Status: model.OrderStatusPending}
	require.NoError(t, store.CreateOrder(context.Background(), order))

	verifier := &fakeVerifier{events: map[string]*payment.Event{
		"e": {ID: "evt_x", Type: payment.EventCheckoutCompleted, OrderID: "o1", AmountTotal: 800},
	}}
	publisher := &stallingPublisher{}
	svc := NewWebhookService(verifier, store, redis_repo.NewMemoryEventLedger(time.Hour), publisher)

	start := time.Now()
	res, err := svc.HandlePaymentEvent(context.Background(), []byte("e"), "valid")
	require.NoError(t, err)
	require.Equal(t, WebhookConfirmed, res.Outcome)
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.Equal(t, 1, publisher.count())
}
