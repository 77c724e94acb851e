package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// SuccessJSON data 為 nil 時輸出 null
func SuccessJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func ErrorJSON(w http.ResponseWriter, status int, kind apperr.Kind, message string) {
	writeJSON(w, status, ResponseError{
		Code:    status,
		Message: message,
		Error:   string(kind),
	})
}

// WriteError 依錯誤類型決定 status, 非 AppError 一律 500 且不外露細節
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		ErrorJSON(w, http.StatusInternalServerError, apperr.Internal, "internal server error")
		return
	}

	message := appErr.Message
	if appErr.Kind == apperr.Internal {
		message = "internal server error"
	}
	ErrorJSON(w, appErr.Kind.HTTPStatus(), appErr.Kind, message)
}
