package constants

import "time"

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "X-Request-ID"
)

// stripe 簽章 header
const PaymentSignatureHeader = "Stripe-Signature"

// webhook body 上限, stripe 事件遠小於此
const MaxWebhookBodyBytes int64 = 64 * 1024

const (
	// 單一品項數量上限
	MaxLineQuantity  = 100
	AccessTokenValid = 24 * time.Hour

	// 發布訂單事件的上限, broker 變慢時不可拖住結帳與 webhook
	OrderEventPublishTimeout = time.Second
)

type ENV string

const (
	Dev  ENV = "development"
	Prod ENV = "production"
)
