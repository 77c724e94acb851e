package util

import (
	"context"

	"github.com/RoyceAzure/lab/foodorder/internal/constants"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/token"
)

// GetTokenPayloadFromContext 未登入時回傳 nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	payload, ok := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload)
	if !ok {
		return nil
	}
	return payload
}

func GetUserID(ctx context.Context) string {
	if payload := GetTokenPayloadFromContext(ctx); payload != nil {
		return payload.UserID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}
