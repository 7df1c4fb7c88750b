package app

import (
	"context"
	"fmt"
	"log/slog"

	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
	"disputedesk/internal/upload"
)

// evidencePortal rejects portals without an upload widget.
func evidencePortal(sess *portal.Session) error {
	if sess.Portal == portal.KindSupport {
		return ErrWrongPortal
	}
	return nil
}

// StageEvidence adds picked or dropped files to the session's pending list.
// Files beyond the cap are never read and are reported once.
func (s *PortalService) StageEvidence(ctx context.Context, sessionID string, files []IncomingFile) (*View, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return s.update(ctx, sessionID, "", func(ctx context.Context, sess *portal.Session) error {
		if err := evidencePortal(sess); err != nil {
			return err
		}
		status := s.notifier(sess.ID, notify.ChannelUpload)
		fit := files
		if room := sess.Evidence.Room(); len(fit) > room {
			fit = fit[:room]
			sess.Evidence.Overflow(ctx, status)
		}
		if len(fit) == 0 {
			return nil
		}
		staged, err := s.uploads.Stage(ctx, sess.ID, fit)
		if err != nil {
			return err
		}
		dropped := sess.Evidence.Add(ctx, status, staged...)
		s.uploads.Discard(ctx, dropped...)
		return nil
	})
}

func (s *PortalService) RemoveEvidence(ctx context.Context, sessionID string, index int) (*View, error) {
	return s.update(ctx, sessionID, "", func(ctx context.Context, sess *portal.Session) error {
		if err := evidencePortal(sess); err != nil {
			return err
		}
		removed, err := sess.Evidence.Remove(index)
		if err != nil {
			return err
		}
		s.uploads.Discard(ctx, removed)
		return nil
	})
}

// UploadEvidence stores every pending file as an asset. On success the asset
// ids are attached to the session and the portal banner confirms the count;
// on failure the pending list stays for a retry.
func (s *PortalService) UploadEvidence(ctx context.Context, sessionID string) (*View, error) {
	var uploadErr error
	view, err := s.update(ctx, sessionID, "", func(ctx context.Context, sess *portal.Session) error {
		if err := evidencePortal(sess); err != nil {
			return err
		}

		staged := append([]upload.PendingFile(nil), sess.Evidence.Pending...)
		_, uploadErr = sess.Evidence.Upload(ctx,
			s.uploads.Uploader(sess.ID),
			s.notifier(sess.ID, notify.ChannelUpload),
			func(assetIDs []string, _ []upload.UploadedFile) {
				s.attach(ctx, sess, assetIDs)
			},
		)
		if uploadErr == nil {
			s.uploads.Discard(ctx, staged...)
		}
		// The queue state is saved either way.
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uploadErr != nil {
		return view, uploadErr
	}
	return view, nil
}

func (s *PortalService) attach(ctx context.Context, sess *portal.Session, assetIDs []string) {
	sess.AttachedAssetIDs = append(sess.AttachedAssetIDs, assetIDs...)
	if err := s.assets.AttachToSession(ctx, sess.ID, assetIDs); err != nil {
		slog.WarnContext(ctx, "attach assets failed", "session_id", sess.ID, "error", err)
	}

	format := noticeDocumentsUploaded
	if sess.Portal == portal.KindMerchant {
		format = noticeEvidenceUploaded
	}
	s.notifier(sess.ID, notify.ChannelPortal).
		Notify(ctx, notify.KindSuccess, fmt.Sprintf(format, len(assetIDs)), notify.GeneralDelay)
}
