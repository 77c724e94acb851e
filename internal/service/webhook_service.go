package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/payment"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/rs/zerolog"
)

type WebhookOutcome string

const (
	WebhookConfirmed WebhookOutcome = "confirmed"
	WebhookDuplicate WebhookOutcome = "duplicate"
	WebhookIgnored   WebhookOutcome = "ignored"
)

type WebhookResult struct {
	Outcome WebhookOutcome
	EventID string
	OrderID string
	Reason  string
}

type IWebhookService interface {
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}

type WebhookService struct {
	verifier  payment.EventVerifier
	orders    db.IOrderRepository
	ledger    redis_repo.IEventLedger
	publisher producer.IOrderEventPublisher
}

func NewWebhookService(
	verifier payment.EventVerifier,
	orders db.IOrderRepository,
	ledger redis_repo.IEventLedger,
	publisher producer.IOrderEventPublisher,
) IWebhookService {
	if publisher == nil {
		publisher = producer.NopPublisher{}
	}
	return &WebhookService{
		verifier:  verifier,
		orders:    orders,
		ledger:    ledger,
		publisher: publisher,
	}
}

/*
HandlePaymentEvent
簽章錯誤回傳 SignatureInvalid, 其他無法處理的事件一律忽略並回 200
只有資料庫失敗才回傳 Internal 讓付款服務重送
確認訂單以 status = pending 的條件更新完成, ledger 只是捷徑
*/
func (w *WebhookService) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	evt, err := w.verifier.Verify(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return nil, apperr.Wrap(apperr.SignatureInvalid, "webhook signature verification failed", err)
		}
		return nil, apperr.Wrap(apperr.ValidationError, "malformed payment event", err)
	}

	log := zerolog.Ctx(ctx).With().Str("event_id", evt.ID).Str("event_type", evt.Type).Logger()
	result := &WebhookResult{EventID: evt.ID, OrderID: evt.OrderID}

	if evt.Type != payment.EventCheckoutCompleted {
		return w.done(ctx, log, result, WebhookIgnored, "unhandled event type", false), nil
	}

	if w.seen(ctx, log, evt.ID) {
		return w.done(ctx, log, result, WebhookDuplicate, "event already handled", false), nil
	}

	if evt.OrderID == "" {
		return w.done(ctx, log, result, WebhookIgnored, "event has no order id", true), nil
	}

	confirmed, err := w.orders.ConfirmPendingOrder(ctx, evt.OrderID, evt.AmountTotal, evt.ID, evt.SessionID)
	if err != nil {
		log.Error().Err(err).Str("order_id", evt.OrderID).Msg("failed to confirm order")
		return nil, apperr.Wrap(apperr.Internal, "confirm order", err)
	}

	if confirmed {
		order, err := w.orders.GetOrderByID(ctx, evt.OrderID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", evt.OrderID).Msg("confirmed order could not be reloaded for publishing")
		} else {
			publishOrderEvent(ctx, w.publisher, model.NewOrderEvent(model.OrderConfirmedEventName, order, model.OrderStatusPending))
		}
		return w.done(ctx, log, result, WebhookConfirmed, "", true), nil
	}

	// 條件更新沒有命中: 訂單不存在, 或已經確認過
	order, err := w.orders.GetOrderByID(ctx, evt.OrderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return w.done(ctx, log, result, WebhookIgnored, "order not found", true), nil
		}
		log.Error().Err(err).Str("order_id", evt.OrderID).Msg("failed to load order")
		return nil, apperr.Wrap(apperr.Internal, "load order", err)
	}
	if order.Status.IsConfirmedOrLater() {
		return w.done(ctx, log, result, WebhookDuplicate, "order already "+string(order.Status), true), nil
	}

	log.Error().Str("order_id", evt.OrderID).Str("status", string(order.Status)).Msg("order neither pending nor confirmed")
	return nil, apperr.Newf(apperr.Internal, "order %s in unexpected status %s", order.ID, order.Status)
}

// seen ledger 失敗時當作沒看過, 交給條件更新判斷
func (w *WebhookService) seen(ctx context.Context, log zerolog.Logger, eventID string) bool {
	if w.ledger == nil || eventID == "" {
		return false
	}
	ok, err := w.ledger.Seen(ctx, eventID)
	if err != nil {
		log.Warn().Err(err).Msg("event ledger lookup failed")
		return false
	}
	return ok
}

func (w *WebhookService) done(ctx context.Context, log zerolog.Logger, result *WebhookResult, outcome WebhookOutcome, reason string, mark bool) *WebhookResult {
	result.Outcome = outcome
	result.Reason = reason

	if mark && w.ledger != nil && result.EventID != "" {
		if err := w.ledger.Mark(ctx, result.EventID); err != nil {
			log.Warn().Err(err).Msg("failed to mark event as handled")
		}
	}

	log.Info().
		Str("order_id", result.OrderID).
		Str("outcome", string(outcome)).
		Str("reason", reason).
		Msg("payment event handled")
	return result
}
