package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/foodorder/internal/constants"
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/payment"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CheckoutLine 數量保留原始輸入, 由 ParseQuantity 轉換
type CheckoutLine struct {
	MenuItemID string
	Quantity   string
}

type CheckoutInput struct {
	UserID       string
	RestaurantID string
	Delivery     model.DeliveryDetails
	Items        []CheckoutLine
}

type CheckoutResult struct {
	OrderID     string
	SessionID   string
	RedirectURL string
	TotalAmount int64
	Currency    string
}

type CheckoutOptions struct {
	Currency       string
	FrontendURL    string
	GatewayTimeout time.Duration
}

type ICheckoutService interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
}

type CheckoutService struct {
	restaurants db.IRestaurantRepository
	orders      db.IOrderRepository
	gateway     payment.Gateway
	publisher   producer.IOrderEventPublisher
	opts        CheckoutOptions
}

func NewCheckoutService(
	restaurants db.IRestaurantRepository,
	orders db.IOrderRepository,
	gateway payment.Gateway,
	publisher producer.IOrderEventPublisher,
	opts CheckoutOptions,
) ICheckoutService {
	if opts.Currency == "" {
		opts.Currency = "inr"
	}
	if opts.GatewayTimeout <= 0 {
		opts.GatewayTimeout = 10 * time.Second
	}
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	if publisher == nil {
		publisher = producer.NopPublisher{}
	}
	return &CheckoutService{
		restaurants: restaurants,
		orders:      orders,
		gateway:     gateway,
		publisher:   publisher,
		opts:        opts,
	}
}

// ParseQuantity 接受 "2", "2.0", 2 這類整數值, 範圍 1..MaxLineQuantity
func ParseQuantity(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.New(apperr.ValidationError, "quantity is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, apperr.Newf(apperr.ValidationError, "quantity %q is not a number", raw)
	}
	if !d.IsInteger() {
		return 0, apperr.Newf(apperr.ValidationError, "quantity %q is not a whole number", raw)
	}
	if d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(constants.MaxLineQuantity)) {
		return 0, apperr.Newf(apperr.ValidationError, "quantity %q must be between 1 and %d", raw, constants.MaxLineQuantity)
	}
	return d.IntPart(), nil
}

func validateDelivery(d model.DeliveryDetails) error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(d.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(d.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.ValidationError, "delivery details missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

type requestedLine struct {
	menuItemID string
	quantity   int64
}

func (c *CheckoutService) validate(in CheckoutInput) ([]requestedLine, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apperr.New(apperr.Unauthenticated, "caller identity is required")
	}
	if strings.TrimSpace(in.RestaurantID) == "" {
		return nil, apperr.New(apperr.ValidationError, "restaurantId is required")
	}
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.ValidationError, "cartItems must not be empty")
	}
	if err := validateDelivery(in.Delivery); err != nil {
		return nil, err
	}

	lines := make([]requestedLine, 0, len(in.Items))
	for i, item := range in.Items {
		if strings.TrimSpace(item.MenuItemID) == "" {
			return nil, apperr.Newf(apperr.ValidationError, "cartItems[%d].menuItemId is required", i)
		}
		qty, err := ParseQuantity(item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, requestedLine{menuItemID: item.MenuItemID, quantity: qty})
	}
	return lines, nil
}

// priceLines 價格只取自菜單, 任一品項找不到就整筆失敗
func priceLines(restaurant *model.Restaurant, lines []requestedLine) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		menuItem, ok := restaurant.FindMenuItem(line.menuItemID)
		if !ok {
			return nil, apperr.Newf(apperr.InvalidReference, "menu item %s is not on restaurant %s", line.menuItemID, restaurant.ID)
		}
		items = append(items, model.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			ImageURL:   menuItem.ImageURL,
			UnitAmount: menuItem.PriceMinor,
			Quantity:   line.quantity,
			LineTotal:  menuItem.PriceMinor * line.quantity,
		})
	}
	return items, nil
}

func (c *CheckoutService) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	log := zerolog.Ctx(ctx)

	lines, err := c.validate(in)
	if err != nil {
		return nil, err
	}

	restaurant, err := c.restaurants.GetRestaurantByID(ctx, in.RestaurantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "restaurant %s not found", in.RestaurantID)
		}
		return nil, apperr.Wrap(apperr.Internal, "load restaurant", err)
	}

	items, err := priceLines(restaurant, lines)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		RestaurantID:    restaurant.ID,
		UserID:          in.UserID,
		DeliveryDetails: in.Delivery,
		Items:           items,
		TotalAmount:     model.SumLineTotals(items),
		Currency:        c.opts.Currency,
		Status:          model.OrderStatusPending,
	}
	if err := c.orders.CreateOrder(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "create order", err)
	}
	log.Info().
		Str("order_id", order.ID).
		Str("restaurant_id", order.RestaurantID).
		Int64("total_amount", order.TotalAmount).
		Msg("pending order created")
	publishOrderEvent(ctx, c.publisher, model.NewOrderEvent(model.OrderCreatedEventName, order, ""))

	// 付款服務失敗時訂單保留 pending, 不回滾
	session, err := c.createSession(ctx, order)
	if err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("payment gateway failed to create session")
		return nil, apperr.Wrap(apperr.GatewayUnavailable, "payment gateway unavailable", err)
	}

	if err := c.orders.SetPaymentSession(ctx, order.ID, session.ID); err != nil {
		// webhook 會再帶回 session id
		log.Warn().Err(err).Str("order_id", order.ID).Str("session_id", session.ID).Msg("failed to record payment session")
	}

	return &CheckoutResult{
		OrderID:     order.ID,
		SessionID:   session.ID,
		RedirectURL: session.URL,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
	}, nil
}

func (c *CheckoutService) createSession(ctx context.Context, order *model.Order) (*payment.Session, error) {
	lineItems := make([]payment.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			ImageURL:   item.ImageURL,
			UnitAmount: item.UnitAmount,
			Quantity:   item.Quantity,
		})
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, c.opts.GatewayTimeout)
	defer cancel()

	return c.gateway.CreateSession(gatewayCtx, payment.SessionRequest{
		Currency:  order.Currency,
		LineItems: lineItems,
		Metadata:  map[string]string{payment.MetadataOrderID: order.ID},
		Redirects: payment.Redirects{
			SuccessURL: c.opts.FrontendURL + "/order/status",
			CancelURL:  c.opts.FrontendURL + "/cart",
		},
		CustomerEmail: order.DeliveryDetails.Email,
	})
}
