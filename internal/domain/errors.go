package domain

import "errors"

// Every ledger-affecting failure aborts its transaction and surfaces as one
// of these; handlers map the error kind, never the message, to a status code.
var (
	ErrInsufficientBalance = errors.New("insufficient point balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNotFound            = errors.New("not found")

	ErrAlreadySubmitted = errors.New("proof already submitted for this task")
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrAlreadyProcessed = errors.New("submission already processed")
	ErrWrongTaskType    = errors.New("wrong task type")
	ErrTaskNotEligible  = errors.New("task not active or not auto-verifiable")

	ErrInvalidCode      = errors.New("claim code invalid or inactive")
	ErrAlreadyUsed      = errors.New("claim code already used")
	ErrExpired          = errors.New("claim code expired")
	ErrMaxClaimsReached = errors.New("claim code fully redeemed")

	ErrSelfTip           = errors.New("cannot tip yourself")
	ErrRecipientNotFound = errors.New("recipient not found")

	ErrNoActiveRaffle = errors.New("no active raffle")
	ErrAlreadyDrawn   = errors.New("raffle already drawn")
	ErrInvalidWinner  = errors.New("winner has no entry in this raffle")

	ErrBanned = errors.New("account is banned")
)
