package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"disputedesk/internal/agent"
	"disputedesk/internal/logger"
	"disputedesk/internal/model"
	"disputedesk/internal/notify"
	"disputedesk/internal/pkg/jwtutil"
	"disputedesk/internal/portal"
	"disputedesk/internal/upload"
)

type PortalDeps struct {
	Sessions     SessionStore
	Guard        SessionGuard
	Notices      notify.Sink
	Delays       notify.Delays
	Agents       agent.Caller
	Cases        CaseStore
	Transactions TransactionStore
	Assets       AssetStore
	Uploads      *UploadService
	Publisher    TranscriptPublisher

	TokenSecret string
	TokenTTL    time.Duration

	CustomerMaxFiles int
	MerchantMaxFiles int

	NewID func() string
	Now   func() time.Time
}

// PortalService runs the customer, merchant and support flows against
// server-held portal sessions.
type PortalService struct {
	sessions  SessionStore
	guard     SessionGuard
	notices   notify.Sink
	delays    notify.Delays
	agents    agent.Caller
	cases     CaseStore
	txs       TransactionStore
	assets    AssetStore
	uploads   *UploadService
	publisher TranscriptPublisher

	tokenSecret string
	tokenTTL    time.Duration
	maxFiles    map[portal.Kind]int

	newID func() string
	now   func() time.Time
}

func NewPortalService(d PortalDeps) *PortalService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.TokenTTL <= 0 {
		d.TokenTTL = 4 * time.Hour
	}
	return &PortalService{
		sessions:    d.Sessions,
		guard:       d.Guard,
		notices:     d.Notices,
		delays:      d.Delays,
		agents:      d.Agents,
		cases:       d.Cases,
		txs:         d.Transactions,
		assets:      d.Assets,
		uploads:     d.Uploads,
		publisher:   d.Publisher,
		tokenSecret: d.TokenSecret,
		tokenTTL:    d.TokenTTL,
		maxFiles: map[portal.Kind]int{
			portal.KindCustomer: d.CustomerMaxFiles,
			portal.KindMerchant: d.MerchantMaxFiles,
			portal.KindSupport:  upload.DefaultMaxFiles,
		},
		newID: d.NewID,
		now:   d.Now,
	}
}

type OpenResult struct {
	Token   string `json:"token"`
	Session *View  `json:"session"`
}

// Open starts a fresh session for one portal and signs a token bound to it.
func (s *PortalService) Open(ctx context.Context, kind portal.Kind) (*OpenResult, error) {
	if _, ok := portal.ParseKind(string(kind)); !ok {
		return nil, ErrInvalidInput
	}

	sess := portal.NewSession(s.newID(), kind, s.maxFiles[kind], s.now())
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.tokenSecret, s.tokenTTL, sess.ID, string(kind))
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "portal session opened", "session_id", sess.ID, "portal", kind)
	return &OpenResult{Token: token, Session: s.view(ctx, sess)}, nil
}

func (s *PortalService) View(ctx context.Context, sessionID string) (*View, error) {
	sess, err := s.load(ctx, sessionID, "")
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess), nil
}

// Leave drops the session and its staged files, which returns the user to
// the landing page. It does not wait for the session lease: an operation
// still running fails its final save and discards its result.
func (s *PortalService) Leave(ctx context.Context, sessionID string) error {
	sess, err := s.load(ctx, sessionID, "")
	if err != nil {
		return err
	}
	s.discardPending(ctx, sess)
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "portal session closed", "session_id", sessionID, "portal", sess.Portal)
	return nil
}

func (s *PortalService) Notifications(ctx context.Context, sessionID string) ([]notify.Notification, error) {
	if _, err := s.load(ctx, sessionID, ""); err != nil {
		return nil, err
	}
	return s.notices.Active(ctx, sessionID)
}

// load fetches a session and checks it belongs to kind; an empty kind
// accepts any portal.
func (s *PortalService) load(ctx context.Context, sessionID string, kind portal.Kind) (*portal.Session, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if kind != "" && sess.Portal != kind {
		return nil, ErrWrongPortal
	}
	return sess, nil
}

// save writes back a loaded session. It fails with ErrSessionNotFound once
// the session has been left.
func (s *PortalService) save(ctx context.Context, sess *portal.Session) error {
	sess.UpdatedAt = s.now()
	saved, err := s.sessions.Save(ctx, sess)
	if err != nil {
		return err
	}
	if !saved {
		return ErrSessionNotFound
	}
	return nil
}

// lock takes the per-session lease. The returned release runs on a detached
// context so it still fires after the request is gone.
func (s *PortalService) lock(ctx context.Context, sessionID string) (func(), error) {
	token, ok, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), sessionID, token); err != nil {
			slog.WarnContext(ctx, "release session lock failed", "session_id", sessionID, "error", err)
		}
	}, nil
}

// update runs fn under the session lease and saves the result.
func (s *PortalService) update(
	ctx context.Context,
	sessionID string,
	kind portal.Kind,
	fn func(ctx context.Context, sess *portal.Session) error,
) (*View, error) {
	release, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := s.load(ctx, sessionID, kind)
	if err != nil {
		return nil, err
	}
	// Holding the lease means nothing else is in flight.
	sess.Loading = false

	if err := fn(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sess); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			slog.InfoContext(ctx, "session left during update, changes dropped", "session_id", sessionID)
			s.discardPending(ctx, sess)
		}
		return nil, err
	}
	return s.view(ctx, sess), nil
}

func (s *PortalService) notifier(sessionID string, channel notify.Channel) *notify.Bound {
	return notify.Bind(s.notices, sessionID, channel, s.now).WithDelays(s.delays)
}

// archive hands confirmed messages to the transcript queue. Failures are
// logged and never surface to the user.
func (s *PortalService) archive(ctx context.Context, sess *portal.Session, msgs ...portal.ChatMessage) {
	if s.publisher == nil || len(msgs) == 0 {
		return
	}
	rows := make([]model.TranscriptMessage, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, model.TranscriptMessage{
			SessionID: sess.ID,
			Portal:    string(sess.Portal),
			Role:      string(m.Role),
			Content:   m.Content,
			SentAt:    m.Timestamp,
		})
	}
	if err := s.publisher.Publish(ctx, rows...); err != nil {
		slog.WarnContext(ctx, "archive transcript failed", "session_id", sess.ID, "messages", len(rows), "error", err)
	}
}

func (s *PortalService) discardPending(ctx context.Context, sess *portal.Session) {
	if s.uploads != nil && len(sess.Evidence.Pending) > 0 {
		s.uploads.Discard(ctx, sess.Evidence.Pending...)
	}
}

// AgentFailure reports a failed agent exchange. Notice is the text shown to
// the user; the session view is returned alongside it.
type AgentFailure struct {
	Notice string
	Err    error
}

func (e *AgentFailure) Error() string {
	if e.Err == nil {
		return e.Notice
	}
	return fmt.Sprintf("%s: %v", e.Notice, e.Err)
}

func (e *AgentFailure) Unwrap() error { return ErrAgentUnavailable }

// turn describes one agent exchange.
type turn struct {
	kind    portal.Kind
	agentID string

	// prepare checks the session and returns the prompt to send.
	prepare func(sess *portal.Session) (string, error)
	// userText, when set, is appended to the transcript before the call.
	userText string
	// apply stores the decoded result and returns the agent reply to append.
	// It must leave the session untouched when it fails.
	apply func(sess *portal.Session, res *agent.Result) (string, error)

	successNotice string
	// rejectNotice covers a reported failure or an unusable payload,
	// transportNotice a call that never produced a response.
	rejectNotice    string
	transportNotice string
}

// exchange runs one agent call. The user turn is shown as pending while the
// call runs; afterwards it is confirmed with the reply or kept alone on
// failure. The call is not cancelled when the request goes away.
func (s *PortalService) exchange(ctx context.Context, sessionID string, t turn) (*View, error) {
	release, err := s.lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := s.load(ctx, sessionID, t.kind)
	if err != nil {
		return nil, err
	}
	sess.Loading = false

	prompt, err := t.prepare(sess)
	if err != nil {
		return nil, err
	}

	if t.userText != "" {
		if err := sess.Transcript.Begin(portal.ChatMessage{
			Role:      portal.RoleUser,
			Content:   t.userText,
			Timestamp: s.now(),
		}); err != nil {
			return nil, err
		}
	}
	sess.Loading = true
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	callCtx := context.WithoutCancel(ctx)
	started := time.Now()
	res, callErr := s.agents.Call(callCtx, prompt, t.agentID)

	sess.Loading = false
	var (
		reply    string
		applyErr error
	)
	if callErr == nil {
		reply, applyErr = t.apply(sess, res)
	}

	var failure *AgentFailure
	switch {
	case callErr != nil:
		failure = &AgentFailure{Notice: t.transportNotice, Err: callErr}
	case applyErr != nil:
		failure = &AgentFailure{Notice: t.rejectNotice, Err: applyErr}
	}

	var confirmed []portal.ChatMessage
	if failure != nil {
		slog.WarnContext(callCtx, "agent exchange failed",
			"session_id", sessionID,
			"agent_id", t.agentID,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", failure.Err)
		if sess.Transcript.Pending != nil {
			confirmed = append(confirmed, *sess.Transcript.Pending)
			_ = sess.Transcript.Fail()
		}
	} else {
		slog.InfoContext(callCtx, "agent exchange completed",
			"session_id", sessionID,
			"agent_id", t.agentID,
			"duration_ms", time.Since(started).Milliseconds(),
			"prompt", logger.Truncate(prompt, 120))
		if sess.Transcript.Pending != nil {
			agentMsg := portal.ChatMessage{Role: portal.RoleAgent, Content: reply, Timestamp: s.now()}
			confirmed = append(confirmed, *sess.Transcript.Pending, agentMsg)
			_ = sess.Transcript.Confirm(agentMsg)
		}
	}

	if err := s.save(callCtx, sess); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			slog.InfoContext(callCtx, "session left during agent call, result dropped",
				"session_id", sessionID, "agent_id", t.agentID)
		}
		return nil, err
	}

	banner := s.notifier(sessionID, notify.ChannelPortal)
	switch {
	case failure != nil:
		banner.Notify(callCtx, notify.KindError, failure.Notice, notify.GeneralDelay)
	case t.successNotice != "":
		banner.Notify(callCtx, notify.KindSuccess, t.successNotice, notify.GeneralDelay)
	}
	s.archive(callCtx, sess, confirmed...)

	view := s.view(callCtx, sess)
	if failure != nil {
		return view, failure
	}
	return view, nil
}

// requireState fails with ErrInvalidState unless sess is in one of states.
func requireState(sess *portal.Session, states ...portal.State) error {
	for _, st := range states {
		if sess.State == st {
			return nil
		}
	}
	return ErrInvalidState
}

// submitReady reports why a submit is refused, if it is.
func submitReady(sess *portal.Session) error {
	if err := requireState(sess, portal.StateActive); err != nil {
		return err
	}
	if !sess.CanSubmit() {
		return ErrSubmitNotReady
	}
	return nil
}
