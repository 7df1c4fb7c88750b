package app

import (
	"context"
	"strings"

	"disputedesk/internal/agent"
	"disputedesk/internal/model"
	"disputedesk/internal/portal"
)

func (s *PortalService) ListTransactions(ctx context.Context) ([]model.DisputedTransaction, error) {
	return s.txs.List(ctx)
}

// StartValidation picks a disputed transaction and opens the validation chat.
func (s *PortalService) StartValidation(ctx context.Context, sessionID, transactionID string) (*View, error) {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return nil, ErrInvalidInput
	}
	tx, err := s.txs.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}

	var welcome portal.ChatMessage
	view, err := s.update(ctx, sessionID, portal.KindMerchant, func(ctx context.Context, sess *portal.Session) error {
		if err := requireState(sess, portal.StateNotStarted); err != nil {
			return err
		}
		welcome = portal.ChatMessage{
			Role:      portal.RoleAgent,
			Content:   portal.MerchantWelcome(tx.TransactionID),
			Timestamp: s.now(),
		}
		sess.TransactionID = tx.TransactionID
		sess.Transcript.Seed(welcome)
		sess.State = portal.StateActive
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.archiveSeed(ctx, sessionID, portal.KindMerchant, welcome)
	return view, nil
}

func (s *PortalService) SendValidationMessage(ctx context.Context, sessionID, text string) (*View, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMessageEmpty
	}
	return s.exchange(ctx, sessionID, turn{
		kind:    portal.KindMerchant,
		agentID: agent.TransactionValidation,
		prepare: func(sess *portal.Session) (string, error) {
			if err := requireState(sess, portal.StateActive); err != nil {
				return "", err
			}
			return portal.ValidationPrompt(sess.TransactionID, text), nil
		},
		userText: text,
		apply: func(sess *portal.Session, res *agent.Result) (string, error) {
			r, err := agent.Decode[agent.TransactionValidationResult](res)
			if err != nil {
				return "", err
			}
			sess.Validation = r
			return portal.MerchantReply(r), nil
		},
		rejectNotice:    noticeValidationReject,
		transportNotice: noticeValidationFailed,
	})
}

// SubmitValidation asks the case analysis agent to assess the validation.
// It is refused until the validation agent has found the transaction.
func (s *PortalService) SubmitValidation(ctx context.Context, sessionID string) (*View, error) {
	return s.exchange(ctx, sessionID, turn{
		kind:    portal.KindMerchant,
		agentID: agent.CaseAnalysis,
		prepare: func(sess *portal.Session) (string, error) {
			if err := submitReady(sess); err != nil {
				return "", err
			}
			return portal.CaseAnalysisPrompt(sess.TransactionID, sess.Validation), nil
		},
		apply: func(sess *portal.Session, res *agent.Result) (string, error) {
			r, err := agent.Decode[agent.CaseAnalysisResult](res)
			if err != nil {
				return "", err
			}
			sess.CaseAnalysis = r
			sess.State = portal.StateResultShown
			return "", nil
		},
		successNotice:   noticeValidationDone,
		rejectNotice:    noticeCaseAnalysisReject,
		transportNotice: noticeAnalysisTransport,
	})
}

// CancelValidation drops the selected transaction and everything gathered
// for it.
func (s *PortalService) CancelValidation(ctx context.Context, sessionID string) (*View, error) {
	return s.update(ctx, sessionID, portal.KindMerchant, func(ctx context.Context, sess *portal.Session) error {
		if err := requireState(sess, portal.StateActive, portal.StateResultShown); err != nil {
			return err
		}
		s.discardPending(ctx, sess)
		sess.Reset()
		return nil
	})
}
