package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/payment"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
)

// memStore 同時實作餐廳與訂單 repository
type memStore struct {
	mu          sync.Mutex
	restaurants map[string]model.Restaurant
	orders      map[string]model.Order
	confirmHits int
	failCreate  error
	failConfirm error
	clock       time.Time
}

func newMemStore(restaurants ...model.Restaurant) *memStore {
	s := &memStore{
		restaurants: map[string]model.Restaurant{},
		orders:      map[string]model.Order{},
		clock:       time.Unix(1_700_000_000, 0).UTC(),
	}
	for _, r := range restaurants {
		s.restaurants[r.ID] = r
	}
	return s
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func copyOrder(o model.Order) model.Order {
	items := make([]model.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (s *memStore) GetRestaurantByID(ctx context.Context, id string) (*model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) ListRestaurantsByOwner(ctx context.Context, ownerUserID string) ([]model.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Restaurant
	for _, r := range s.restaurants {
		if r.OwnerUserID == ownerUserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) UpsertRestaurant(ctx context.Context, restaurant *model.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (s *memStore) CreateOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate != nil {
		return s.failCreate
	}
	if _, ok := s.orders[order.ID]; ok {
		return errors.New("duplicate order id")
	}
	now := s.tick()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].ID = uint(i + 1)
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = copyOrder(*order)
	return nil
}

func (s *memStore) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	o = copyOrder(o)
	if r, ok := s.restaurants[o.RestaurantID]; ok {
		o.Restaurant = &r
	}
	return &o, nil
}

func (s *memStore) sorted(filter func(model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range s.orders {
		if filter(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memStore) GetOrdersByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (s *memStore) GetOrdersByRestaurantID(ctx context.Context, restaurantID string, status model.OrderStatus) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(o model.Order) bool {
		return o.RestaurantID == restaurantID && (status == "" || o.Status == status)
	}), nil
}

func (s *memStore) SetPaymentSession(ctx context.Context, orderID string, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return db.ErrNotFound
	}
	o.PaymentSessionID = sessionID
	s.orders[orderID] = o
	return nil
}

func (s *memStore) ConfirmPendingOrder(ctx context.Context, orderID string, amount int64, eventID string, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failConfirm != nil {
		return false, s.failConfirm
	}
	o, ok := s.orders[orderID]
	if !ok || o.Status != model.OrderStatusPending {
		return false, nil
	}
	o.Status = model.OrderStatusConfirmed
	o.PaymentEventID = eventID
	if amount > 0 {
		o.TotalAmount = amount
	}
	if sessionID != "" {
		o.PaymentSessionID = sessionID
	}
	o.UpdatedAt = s.tick()
	s.orders[orderID] = o
	s.confirmHits++
	return true, nil
}

func (s *memStore) AdvanceOrderStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = s.tick()
	s.orders[orderID] = o
	return true, nil
}

func (s *memStore) setStatus(orderID string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[orderID]
	o.Status = status
	s.orders[orderID] = o
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

var (
	_ db.IRestaurantRepository = (*memStore)(nil)
	_ db.IOrderRepository      = (*memStore)(nil)
)

type fakeGateway struct {
	mu       sync.Mutex
	requests []payment.SessionRequest
	err      error
	delay    time.Duration
}

func (g *fakeGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	id := "cs_test_" + req.Metadata[payment.MetadataOrderID]
	return &payment.Session{ID: id, URL: "https://pay.example/" + id}, nil
}

func (g *fakeGateway) lastRequest() payment.SessionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt model.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) count(eventType model.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.EventType == eventType {
			n++
		}
	}
	return n
}

// fakeVerifier 以 payload 字串當作事件 id 對照表
type fakeVerifier struct {
	events map[string]*payment.Event
}

func (v *fakeVerifier) Verify(payload []byte, signatureHeader string) (*payment.Event, error) {
	if signatureHeader != "valid" {
		return nil, payment.ErrInvalidSignature
	}
	evt, ok := v.events[string(payload)]
	if !ok {
		return nil, errors.New("cannot decode event")
	}
	out := *evt
	return &out, nil
}

func testRestaurant() model.Restaurant {
	return model.Restaurant{
		ID:          "r1",
		OwnerUserID: "owner-1",
		Name:        "Spice Route",
		City:        "Pune",
		Country:     "India",
		Menus: []model.MenuItem{
			{ID: "m1", RestaurantID: "r1", Name: "Paneer Tikka", PriceMinor: 500, ImageURL: "https://img/m1.png"},
			{ID: "m2", RestaurantID: "r1", Name: "Naan", PriceMinor: 300},
		},
	}
}

func otherRestaurant() model.Restaurant {
	return model.Restaurant{
		ID:          "r2",
		OwnerUserID: "owner-2",
		Name:        "Burger Barn",
		Menus:       []model.MenuItem{{ID: "b1", RestaurantID: "r2", Name: "Burger", PriceMinor: 900}},
	}
}

func testDelivery() model.DeliveryDetails {
	return model.DeliveryDetails{
		Name:    "Asha",
		Email:   "asha@example.com",
		Address: "1 MG Road",
		City:    "Pune",
		Country: "India",
		Contact: "9999999999",
	}
}

// stallingPublisher 模擬 broker 無回應, 直到 context 結束
type stallingPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *stallingPublisher) Publish(ctx context.Context, evt model.OrderEvent) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (p *stallingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func shortPublishTimeout(t *testing.T, d time.Duration) {
	prev := orderEventPublishTimeout
	orderEventPublishTimeout = d
	t.Cleanup(func() { orderEventPublishTimeout = prev })
}

type ctxCheckingPublisher struct {
	ctxErr      error
	hadDeadline bool
	deadline    time.Time
}

func (p *ctxCheckingPublisher) Publish(ctx context.Context, evt model.OrderEvent) error {
	p.ctxErr = ctx.Err()
	p.deadline, p.hadDeadline = ctx.Deadline()
	return nil
}
