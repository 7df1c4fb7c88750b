package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"disputedesk/internal/agent"
	"disputedesk/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Data is the reference data the support and merchant dashboards list.
type Data struct {
	EscalatedCases       []agent.DisputeAnalysisManagerResult `yaml:"escalated_cases"`
	DisputedTransactions []model.DisputedTransaction          `yaml:"disputed_transactions"`
}

func Load() (*Data, error) {
	return Parse(seedYAML)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data failed: %w", err)
	}
	for i, c := range d.EscalatedCases {
		if c.DisputeResolutionID == "" {
			return nil, fmt.Errorf("escalated case %d has no dispute_resolution_id", i)
		}
	}
	for i, t := range d.DisputedTransactions {
		if t.TransactionID == "" {
			return nil, fmt.Errorf("disputed transaction %d has no transaction_id", i)
		}
	}
	return &d, nil
}

type CaseWriter interface {
	Upsert(ctx context.Context, c *model.EscalatedCase) error
}

type TransactionWriter interface {
	Upsert(ctx context.Context, tx *model.DisputedTransaction) error
}

// Seed writes d into the stores. Existing rows with the same ids are refreshed.
func Seed(ctx context.Context, d *Data, cases CaseWriter, txs TransactionWriter) error {
	for _, c := range d.EscalatedCases {
		var row model.EscalatedCase
		if err := row.SetAnalysis(c); err != nil {
			return err
		}
		if err := cases.Upsert(ctx, &row); err != nil {
			return err
		}
	}
	for i := range d.DisputedTransactions {
		tx := d.DisputedTransactions[i]
		if err := txs.Upsert(ctx, &tx); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "seed data written",
		"escalated_cases", len(d.EscalatedCases),
		"disputed_transactions", len(d.DisputedTransactions))
	return nil
}
