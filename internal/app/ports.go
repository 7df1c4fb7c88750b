package app

import (
	"context"

	"disputedesk/internal/model"
	"disputedesk/internal/portal"
)

// SessionStore holds live portal sessions. Save only overwrites a session
// that still exists and reports saved=false once it has been deleted.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*portal.Session, error)
	Create(ctx context.Context, session *portal.Session) error
	Save(ctx context.Context, session *portal.Session) (saved bool, err error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionGuard serializes mutating operations on one session.
type SessionGuard interface {
	Acquire(ctx context.Context, sessionID string) (token string, ok bool, err error)
	Release(ctx context.Context, sessionID, token string) error
}

type CaseStore interface {
	List(ctx context.Context) ([]model.EscalatedCase, error)
	GetByCaseID(ctx context.Context, caseID string) (*model.EscalatedCase, error)
}

type TransactionStore interface {
	List(ctx context.Context) ([]model.DisputedTransaction, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.DisputedTransaction, error)
}

type AssetStore interface {
	Create(ctx context.Context, asset *model.Asset) error
	AttachToSession(ctx context.Context, sessionID string, assetIDs []string) error
}

// TranscriptPublisher archives confirmed chat messages asynchronously.
type TranscriptPublisher interface {
	Publish(ctx context.Context, msgs ...model.TranscriptMessage) error
}
