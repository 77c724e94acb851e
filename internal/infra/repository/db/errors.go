package db

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("record not found")
)

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
