package service

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/constants"
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"github.com/RoyceAzure/lab/foodorder/internal/infra/producer"
	"github.com/rs/zerolog"
)

var orderEventPublishTimeout = constants.OrderEventPublishTimeout

/*
publishOrderEvent 寫入成功後才呼叫, 發布失敗只記錄不回傳
使用脫離 request 的 context 並限制時間, 不佔用後續付款服務呼叫的時間
*/
func publishOrderEvent(ctx context.Context, publisher producer.IOrderEventPublisher, evt model.OrderEvent) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orderEventPublishTimeout)
	defer cancel()

	if err := publisher.Publish(pubCtx, evt); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("order_id", evt.OrderID).
			Str("event_type", string(evt.EventType)).
			Msg("failed to publish order event")
	}
}
