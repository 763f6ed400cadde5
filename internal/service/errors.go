package service

import "errors"

var (
	ErrValidation      = errors.New("validation")        // 400
	ErrNotFound        = errors.New("not found")         // 404
	ErrEmptyCart       = errors.New("cart is empty")     // 400
	ErrProductNotFound = errors.New("product not found") // 400
	ErrGateway         = errors.New("payment gateway")   // 502
)
