package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidSignature = errors.New("payment event signature is invalid")
	ErrEmptySessionURL  = errors.New("payment gateway returned a session without url")
)

// 目前唯一會處理的事件類型
const EventCheckoutCompleted = "checkout.session.completed"

// MetadataOrderID 建立 session 時寫入的訂單 id 欄位
const MetadataOrderID = "orderId"

type LineItem struct {
	Name     string
	ImageURL string
	// 最小貨幣單位
	UnitAmount int64
	Quantity   int64
}

type Redirects struct {
	SuccessURL string
	CancelURL  string
}

type SessionRequest struct {
	Currency      string
	LineItems     []LineItem
	Metadata      map[string]string
	Redirects     Redirects
	CustomerEmail string
}

type Session struct {
	ID  string
	URL string
}

// Event 驗證過簽章後的付款事件
type Event struct {
	ID          string
	Type        string
	OrderID     string
	SessionID   string
	AmountTotal int64
}

// Gateway 只負責建立託管的付款頁面, 失敗直接回傳, 不在這裡重試
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// EventVerifier 必須拿到未經解析的 request body
type EventVerifier interface {
	Verify(payload []byte, signatureHeader string) (*Event, error)
}
