package domain

import "errors"

// Every failure the ledger can produce. All of these are recoverable by the
// caller: nothing here is fatal, and no state is mutated before the failure
// point. Match with errors.Is.
var (
	ErrInvalidUsername      = errors.New("username not valid")
	ErrCreditCardAlreadySet = errors.New("only one credit card per user")
	ErrInvalidCreditCard    = errors.New("invalid credit card number")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrSelfPayment          = errors.New("user cannot pay themselves")
	ErrNoCreditCard         = errors.New("must have a credit card to make a payment")
	ErrCardChargeFailed     = errors.New("card charge failed")
)
