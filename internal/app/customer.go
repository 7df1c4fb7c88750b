package app

import (
	"context"
	"strings"

	"disputedesk/internal/agent"
	"disputedesk/internal/portal"
)

// StartDispute opens the dispute conversation with the welcome message.
func (s *PortalService) StartDispute(ctx context.Context, sessionID string) (*View, error) {
	var welcome portal.ChatMessage
	view, err := s.update(ctx, sessionID, portal.KindCustomer, func(ctx context.Context, sess *portal.Session) error {
		if err := requireState(sess, portal.StateNotStarted); err != nil {
			return err
		}
		welcome = portal.ChatMessage{Role: portal.RoleAgent, Content: portal.CustomerWelcome, Timestamp: s.now()}
		sess.Transcript.Seed(welcome)
		sess.State = portal.StateActive
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.archiveSeed(ctx, sessionID, portal.KindCustomer, welcome)
	return view, nil
}

func (s *PortalService) SendDisputeMessage(ctx context.Context, sessionID, text string) (*View, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrMessageEmpty
	}
	return s.exchange(ctx, sessionID, turn{
		kind:    portal.KindCustomer,
		agentID: agent.DisputeConversation,
		prepare: func(sess *portal.Session) (string, error) {
			if err := requireState(sess, portal.StateActive); err != nil {
				return "", err
			}
			return text, nil
		},
		userText: text,
		apply: func(sess *portal.Session, res *agent.Result) (string, error) {
			r, err := agent.Decode[agent.DisputeConversationResult](res)
			if err != nil {
				return "", err
			}
			sess.Dispute = r
			return portal.CustomerReply(r), nil
		},
		rejectNotice:    noticeCustomerReject,
		transportNotice: noticeCustomerTransport,
	})
}

// SubmitDispute sends the collected dispute to the analysis manager. It is
// refused until the conversation agent reports the information complete.
func (s *PortalService) SubmitDispute(ctx context.Context, sessionID string) (*View, error) {
	return s.exchange(ctx, sessionID, turn{
		kind:    portal.KindCustomer,
		agentID: agent.DisputeAnalysisManager,
		prepare: func(sess *portal.Session) (string, error) {
			if err := submitReady(sess); err != nil {
				return "", err
			}
			return portal.DisputeAnalysisPrompt(sess.Dispute), nil
		},
		apply: func(sess *portal.Session, res *agent.Result) (string, error) {
			r, err := agent.Decode[agent.DisputeAnalysisManagerResult](res)
			if err != nil {
				return "", err
			}
			sess.Analysis = r
			sess.State = portal.StateResultShown
			return "", nil
		},
		successNotice:   noticeAnalysisDone,
		rejectNotice:    noticeAnalysisReject,
		transportNotice: noticeAnalysisTransport,
	})
}

// CloseDispute leaves the analysis view and starts over.
func (s *PortalService) CloseDispute(ctx context.Context, sessionID string) (*View, error) {
	return s.update(ctx, sessionID, portal.KindCustomer, func(ctx context.Context, sess *portal.Session) error {
		if err := requireState(sess, portal.StateResultShown); err != nil {
			return err
		}
		s.discardPending(ctx, sess)
		sess.Reset()
		return nil
	})
}

func (s *PortalService) archiveSeed(ctx context.Context, sessionID string, kind portal.Kind, msg portal.ChatMessage) {
	s.archive(ctx, &portal.Session{ID: sessionID, Portal: kind}, msg)
}
