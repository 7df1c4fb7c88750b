package app

import (
	"context"
	"strings"

	"disputedesk/internal/agent"
	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
)

type Decision string

const (
	DecisionApprove     Decision = "approve"
	DecisionDeny        Decision = "deny"
	DecisionRequestInfo Decision = "request_info"
)

var decisionNotices = map[Decision]string{
	DecisionApprove:     "Dispute approved successfully",
	DecisionDeny:        "Dispute denied and customer notified",
	DecisionRequestInfo: "Additional information requested from customer",
}

func (s *PortalService) ListCases(ctx context.Context) ([]agent.DisputeAnalysisManagerResult, error) {
	rows, err := s.cases.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]agent.DisputeAnalysisManagerResult, 0, len(rows))
	for i := range rows {
		r, err := rows[i].Analysis()
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *PortalService) getCase(ctx context.Context, caseID string) (*agent.DisputeAnalysisManagerResult, error) {
	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		return nil, ErrInvalidInput
	}
	row, err := s.cases.GetByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrCaseNotFound
	}
	return row.Analysis()
}

func (s *PortalService) SelectCase(ctx context.Context, sessionID, caseID string) (*View, error) {
	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, portal.KindSupport, func(ctx context.Context, sess *portal.Session) error {
		if sess.SelectedCaseID != c.DisputeResolutionID {
			sess.Knowledge = nil
		}
		sess.SelectedCaseID = c.DisputeResolutionID
		return nil
	})
}

// Decide records nothing and calls no agent. It shows the canned
// confirmation and clears the selection.
func (s *PortalService) Decide(ctx context.Context, sessionID, caseID string, decision Decision) (*View, error) {
	notice, ok := decisionNotices[decision]
	if !ok {
		return nil, ErrInvalidDecision
	}
	if _, err := s.getCase(ctx, caseID); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, portal.KindSupport, func(ctx context.Context, sess *portal.Session) error {
		sess.SelectedCaseID = ""
		sess.Knowledge = nil
		s.notifier(sessionID, notify.ChannelPortal).Notify(ctx, notify.KindSuccess, notice, notify.GeneralDelay)
		return nil
	})
}

// CaseKnowledge asks the knowledge agent for policies, FAQs and precedents
// relevant to a case, and selects that case.
func (s *PortalService) CaseKnowledge(ctx context.Context, sessionID, caseID string) (*View, error) {
	c, err := s.getCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return s.exchange(ctx, sessionID, turn{
		kind:    portal.KindSupport,
		agentID: agent.KnowledgeRetrieval,
		prepare: func(sess *portal.Session) (string, error) {
			return portal.KnowledgePrompt(c), nil
		},
		apply: func(sess *portal.Session, res *agent.Result) (string, error) {
			r, err := agent.Decode[agent.KnowledgeRetrievalResult](res)
			if err != nil {
				return "", err
			}
			sess.SelectedCaseID = c.DisputeResolutionID
			sess.Knowledge = r
			return "", nil
		},
		rejectNotice:    noticeKnowledgeReject,
		transportNotice: noticeKnowledgeFailed,
	})
}
