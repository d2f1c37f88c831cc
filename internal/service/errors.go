package service

import "errors"

var (
	// cart
	ErrMissingField      = errors.New("productId and quantity are required")
	ErrInvalidQuantity   = errors.New("quantity must be an integer greater than 0")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidUserID     = errors.New("invalid user id")

	// catalog
	ErrMissingName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must be a number greater than 0 with at most two decimals")
	ErrInvalidStock = errors.New("stock must be an integer greater than or equal to 0")

	// auth
	ErrInvalidEmail       = errors.New("email must be valid")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingUsername    = errors.New("username is required")
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)
