// Package apptest holds in-memory stand-ins for the stores and remote
// services the portal service depends on.
package apptest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"disputedesk/internal/agent"
	"disputedesk/internal/model"
	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
)

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{now: t} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sequence returns ids "1", "2", ... in order.
func Sequence() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%d", n)
	}
}

// Sessions round-trips sessions through JSON like the Redis store does.
type Sessions struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewSessions() *Sessions { return &Sessions{items: map[string][]byte{}} }

func (s *Sessions) Get(_ context.Context, id string) (*portal.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	var out portal.Session
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Sessions) Create(_ context.Context, sess *portal.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sess.ID] = raw
	return nil
}

// Save only replaces a session that is still present.
func (s *Sessions) Save(_ context.Context, sess *portal.Session) (bool, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[sess.ID]; !ok {
		return false, nil
	}
	s.items[sess.ID] = raw
	return true, nil
}

func (s *Sessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type Guard struct {
	mu   sync.Mutex
	held map[string]string
	seq  int
}

func NewGuard() *Guard { return &Guard{held: map[string]string{}} }

func (g *Guard) Acquire(_ context.Context, id string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[id]; busy {
		return "", false, nil
	}
	g.seq++
	token := fmt.Sprintf("t%d", g.seq)
	g.held[id] = token
	return token, true, nil
}

func (g *Guard) Release(_ context.Context, id, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[id] == token {
		delete(g.held, id)
	}
	return nil
}

func (g *Guard) Held(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.held[id]
	return ok
}

// Notices keeps the latest notification per session channel and expires
// them against its clock.
type Notices struct {
	mu    sync.Mutex
	clock func() time.Time
	items map[string]map[notify.Channel]notify.Notification
	// Posted records every notification in order.
	Posted []notify.Notification
}

func NewNotices(clock func() time.Time) *Notices {
	return &Notices{clock: clock, items: map[string]map[notify.Channel]notify.Notification{}}
}

func (n *Notices) Put(_ context.Context, sessionID string, note notify.Notification, _ time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.items[sessionID] == nil {
		n.items[sessionID] = map[notify.Channel]notify.Notification{}
	}
	n.items[sessionID][note.Channel] = note
	n.Posted = append(n.Posted, note)
	return nil
}

func (n *Notices) Active(_ context.Context, sessionID string) ([]notify.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var all []notify.Notification
	for _, ch := range []notify.Channel{notify.ChannelPortal, notify.ChannelUpload} {
		if note, ok := n.items[sessionID][ch]; ok {
			all = append(all, note)
		}
	}
	return notify.LiveOnly(n.clock(), all), nil
}

// Messages lists the text of every posted notification of kind.
func (n *Notices) Messages(kind notify.Kind) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, note := range n.Posted {
		if note.Type == kind {
			out = append(out, note.Message)
		}
	}
	return out
}

type Call struct {
	Message string
	AgentID string
}

// Agent answers calls with CallFn and records them.
type Agent struct {
	mu     sync.Mutex
	Calls  []Call
	CallFn func(ctx context.Context, message, agentID string) (*agent.Result, error)
}

func (a *Agent) Call(ctx context.Context, message, agentID string) (*agent.Result, error) {
	a.mu.Lock()
	a.Calls = append(a.Calls, Call{Message: message, AgentID: agentID})
	fn := a.CallFn
	a.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("no agent response configured")
	}
	return fn(ctx, message, agentID)
}

// Reply builds a successful agent result carrying v.
func Reply(v any) *agent.Result {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &agent.Result{
		Success:  true,
		Response: agent.Response{Status: agent.StatusSuccess, Result: raw},
	}
}

// Rejected is a result whose payload status is not success.
func Rejected() *agent.Result {
	return &agent.Result{
		Success:  true,
		Response: agent.Response{Status: "error", Message: "agent declined"},
	}
}

type Cases struct {
	Rows []model.EscalatedCase
}

func (c *Cases) List(context.Context) ([]model.EscalatedCase, error) {
	return append([]model.EscalatedCase(nil), c.Rows...), nil
}

func (c *Cases) GetByCaseID(_ context.Context, caseID string) (*model.EscalatedCase, error) {
	for i := range c.Rows {
		if c.Rows[i].CaseID == caseID {
			row := c.Rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (c *Cases) Upsert(_ context.Context, row *model.EscalatedCase) error {
	for i := range c.Rows {
		if c.Rows[i].CaseID == row.CaseID {
			c.Rows[i] = *row
			return nil
		}
	}
	c.Rows = append(c.Rows, *row)
	return nil
}

type Transactions struct {
	Rows []model.DisputedTransaction
}

func (t *Transactions) List(context.Context) ([]model.DisputedTransaction, error) {
	return append([]model.DisputedTransaction(nil), t.Rows...), nil
}

func (t *Transactions) GetByTransactionID(_ context.Context, id string) (*model.DisputedTransaction, error) {
	for i := range t.Rows {
		if t.Rows[i].TransactionID == id {
			row := t.Rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (t *Transactions) Upsert(_ context.Context, row *model.DisputedTransaction) error {
	for i := range t.Rows {
		if t.Rows[i].TransactionID == row.TransactionID {
			t.Rows[i] = *row
			return nil
		}
	}
	t.Rows = append(t.Rows, *row)
	return nil
}

type Assets struct {
	mu   sync.Mutex
	Rows map[string]model.Asset
}

func NewAssets() *Assets { return &Assets{Rows: map[string]model.Asset{}} }

func (a *Assets) Create(_ context.Context, asset *model.Asset) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Rows[asset.AssetID] = *asset
	return nil
}

func (a *Assets) AttachToSession(_ context.Context, sessionID string, ids []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range ids {
		if row, ok := a.Rows[id]; ok {
			row.SessionID = sessionID
			a.Rows[id] = row
		}
	}
	return nil
}

type Publisher struct {
	mu   sync.Mutex
	Sent []model.TranscriptMessage
	Err  error
}

func (p *Publisher) Publish(_ context.Context, msgs ...model.TranscriptMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Sent = append(p.Sent, msgs...)
	return nil
}
