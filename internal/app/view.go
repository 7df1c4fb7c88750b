package app

import (
	"context"
	"log/slog"
	"time"

	"disputedesk/internal/agent"
	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
	"disputedesk/internal/upload"
)

// View is what a portal page renders for its session.
type View struct {
	SessionID string               `json:"session_id"`
	Portal    portal.Kind          `json:"portal"`
	State     portal.State         `json:"state"`
	Loading   bool                 `json:"loading"`
	CanSubmit bool                 `json:"can_submit"`
	Messages  []portal.ChatMessage `json:"messages"`

	Dispute  *agent.DisputeConversationResult    `json:"dispute,omitempty"`
	Analysis *agent.DisputeAnalysisManagerResult `json:"analysis,omitempty"`

	TransactionID string                             `json:"transaction_id,omitempty"`
	Validation    *agent.TransactionValidationResult `json:"validation,omitempty"`
	CaseAnalysis  *agent.CaseAnalysisResult          `json:"case_analysis,omitempty"`

	SelectedCaseID string                          `json:"selected_case_id,omitempty"`
	Knowledge      *agent.KnowledgeRetrievalResult `json:"knowledge,omitempty"`

	Evidence         *EvidenceView `json:"evidence,omitempty"`
	AttachedAssetIDs []string      `json:"attached_asset_ids"`

	Notifications []notify.Notification `json:"notifications"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type EvidenceView struct {
	MaxFiles int                   `json:"max_files"`
	Pending  []PendingFileView     `json:"pending"`
	Uploaded []upload.UploadedFile `json:"uploaded"`
}

type PendingFileView struct {
	Index     int         `json:"index"`
	Name      string      `json:"name"`
	Size      int64       `json:"size"`
	SizeLabel string      `json:"size_label"`
	Icon      upload.Icon `json:"icon"`
}

func (s *PortalService) view(ctx context.Context, sess *portal.Session) *View {
	v := &View{
		SessionID:        sess.ID,
		Portal:           sess.Portal,
		State:            sess.State,
		Loading:          sess.Loading,
		CanSubmit:        sess.CanSubmit(),
		Messages:         sess.Transcript.Messages(),
		Dispute:          sess.Dispute,
		Analysis:         sess.Analysis,
		TransactionID:    sess.TransactionID,
		Validation:       sess.Validation,
		CaseAnalysis:     sess.CaseAnalysis,
		SelectedCaseID:   sess.SelectedCaseID,
		Knowledge:        sess.Knowledge,
		AttachedAssetIDs: append([]string{}, sess.AttachedAssetIDs...),
		UpdatedAt:        sess.UpdatedAt,
	}
	if sess.Portal != portal.KindSupport {
		v.Evidence = evidenceView(sess.Evidence)
	}

	notes, err := s.notices.Active(ctx, sess.ID)
	if err != nil {
		slog.WarnContext(ctx, "load notifications failed", "session_id", sess.ID, "error", err)
	}
	if notes == nil {
		notes = []notify.Notification{}
	}
	v.Notifications = notes
	return v
}

func evidenceView(q upload.Queue) *EvidenceView {
	ev := &EvidenceView{
		MaxFiles: q.MaxFiles,
		Pending:  make([]PendingFileView, 0, len(q.Pending)),
		Uploaded: append([]upload.UploadedFile{}, q.Uploaded...),
	}
	for i, f := range q.Pending {
		ev.Pending = append(ev.Pending, PendingFileView{
			Index:     i,
			Name:      f.Name,
			Size:      f.Size,
			SizeLabel: upload.SizeLabel(f.Size),
			Icon:      upload.IconFor(f.Name),
		})
	}
	return ev
}
