package handler

import (
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/constants"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
)

type PaymentHandler struct {
	webhookService service.IWebhookService
}

func NewPaymentHandler(webhookService service.IWebhookService) *PaymentHandler {
	if webhookService == nil {
		panic("webhookService cannot be nil")
	}
	return &PaymentHandler{
		webhookService: webhookService,
	}
}

type webhookAck struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

// @Summary payment gateway webhook
// @Description 簽章驗證需要原始 body, 這裡不可先做 json 解析
// @Tags payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "gateway signature"
// @Success 200 {object} api.Response "handled or ignored"
// @Failure 400 {object} api.ResponseError{data=string} "SignatureInvalid"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /payments/webhook [post]
func (p *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodyBytes))
	if err != nil {
		api.WriteError(w, apperr.Wrap(apperr.ValidationError, "unreadable webhook body", err))
		return
	}

	res, err := p.webhookService.HandlePaymentEvent(r.Context(), payload, r.Header.Get(constants.PaymentSignatureHeader))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.SuccessJSON(w, webhookAck{Received: true, Outcome: string(res.Outcome)})
}
