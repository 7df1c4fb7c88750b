package portal

import (
	"time"

	"disputedesk/internal/agent"
	"disputedesk/internal/upload"
)

type Kind string

const (
	KindCustomer Kind = "customer"
	KindSupport  Kind = "support"
	KindMerchant Kind = "merchant"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindCustomer, KindSupport, KindMerchant:
		return k, true
	default:
		return "", false
	}
}

type State string

const (
	StateNotStarted  State = "not_started"
	StateActive      State = "active_conversation"
	StateResultShown State = "result_shown"
)

// Session is the server-held view state of one portal tab. Each result field
// holds at most one snapshot; a new agent response replaces it wholesale.
type Session struct {
	ID         string     `json:"id"`
	Portal     Kind       `json:"portal"`
	State      State      `json:"state"`
	Transcript Transcript `json:"transcript"`
	Loading    bool       `json:"loading"`

	Dispute  *agent.DisputeConversationResult    `json:"dispute,omitempty"`
	Analysis *agent.DisputeAnalysisManagerResult `json:"analysis,omitempty"`

	TransactionID string                             `json:"transaction_id,omitempty"`
	Validation    *agent.TransactionValidationResult `json:"validation,omitempty"`
	CaseAnalysis  *agent.CaseAnalysisResult          `json:"case_analysis,omitempty"`

	SelectedCaseID string                          `json:"selected_case_id,omitempty"`
	Knowledge      *agent.KnowledgeRetrievalResult `json:"knowledge,omitempty"`

	Evidence         upload.Queue `json:"evidence"`
	AttachedAssetIDs []string     `json:"attached_asset_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, kind Kind, maxFiles int, now time.Time) *Session {
	return &Session{
		ID:        id,
		Portal:    kind,
		State:     StateNotStarted,
		Evidence:  upload.NewQueue(maxFiles),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanSubmit reports whether the submit-for-analysis control is enabled. The
// completeness signal comes from the agent, never from local validation.
func (s *Session) CanSubmit() bool {
	if s.State != StateActive || s.Loading {
		return false
	}
	switch s.Portal {
	case KindCustomer:
		return s.Dispute != nil && s.Dispute.InformationComplete
	case KindMerchant:
		return s.Validation != nil && s.Validation.MerchantData.TransactionFound
	default:
		return false
	}
}

// Reset drops the conversation, every result snapshot and the attachments,
// returning the portal to not-started.
func (s *Session) Reset() {
	s.State = StateNotStarted
	s.Transcript.Reset()
	s.Loading = false
	s.Dispute = nil
	s.Analysis = nil
	s.TransactionID = ""
	s.Validation = nil
	s.CaseAnalysis = nil
	s.SelectedCaseID = ""
	s.Knowledge = nil
	s.AttachedAssetIDs = nil
	s.Evidence = upload.NewQueue(s.Evidence.MaxFiles)
}
