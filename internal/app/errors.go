package app

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrSessionNotFound     = errors.New("portal session not found")
	ErrWrongPortal         = errors.New("operation not available in this portal")
	ErrInvalidState        = errors.New("operation not allowed in the current state")
	ErrBusy                = errors.New("another request is in progress for this session")
	ErrMessageEmpty        = errors.New("message content is empty")
	ErrSubmitNotReady      = errors.New("the conversation is not ready for analysis")
	ErrCaseNotFound        = errors.New("escalated case not found")
	ErrTransactionNotFound = errors.New("disputed transaction not found")
	ErrInvalidDecision     = errors.New("decision must be approve, deny or request_info")
	ErrAgentUnavailable    = errors.New("agent call failed")
	ErrNoFiles             = errors.New("no files provided")
)
