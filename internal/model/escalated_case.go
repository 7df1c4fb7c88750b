package model

import (
	"encoding/json"
	"fmt"
	"time"

	"disputedesk/internal/agent"
)

// EscalatedCase is a dispute the manager agent routed to human review. The
// manager's result is kept verbatim as JSON.
type EscalatedCase struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CaseID    string    `gorm:"size:64;uniqueIndex;not null" json:"case_id"`
	Priority  string    `gorm:"size:16;index" json:"priority"`
	Payload   string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *EscalatedCase) Analysis() (*agent.DisputeAnalysisManagerResult, error) {
	var out agent.DisputeAnalysisManagerResult
	if err := json.Unmarshal([]byte(c.Payload), &out); err != nil {
		return nil, fmt.Errorf("decode case %s payload failed: %w", c.CaseID, err)
	}
	return &out, nil
}

func (c *EscalatedCase) SetAnalysis(r agent.DisputeAnalysisManagerResult) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode case payload failed: %w", err)
	}
	c.CaseID = r.DisputeResolutionID
	c.Priority = r.EscalationInfo.EscalationPriority
	c.Payload = string(raw)
	return nil
}
