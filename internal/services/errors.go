package services

import "errors"

var (
	// ErrPasswordMismatch means password and confirmation differ at signup.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrWeakPassword means the candidate password failed the policy.
	ErrWeakPassword = errors.New("password must contain uppercase, lowercase, number & special character")
	// ErrEmailExists means the signup email is already registered.
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPaymentMethodRequired means checkout was attempted without a
	// payment method. Callers redirect back to checkout instead of
	// reporting an error.
	ErrPaymentMethodRequired = errors.New("payment method required")
	// ErrEmptyCart means checkout was attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)
