package fixtures_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/fixtures"
	"disputedesk/internal/model"
)

type caseSink struct{ rows []model.EscalatedCase }

func (s *caseSink) Upsert(_ context.Context, c *model.EscalatedCase) error {
	s.rows = append(s.rows, *c)
	return nil
}

type txSink struct{ rows []model.DisputedTransaction }

func (s *txSink) Upsert(_ context.Context, tx *model.DisputedTransaction) error {
	s.rows = append(s.rows, *tx)
	return nil
}

var _ = Describe("fixtures", func() {
	It("loads the embedded escalated case", func() {
		d, err := fixtures.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(d.EscalatedCases).To(HaveLen(1))

		c := d.EscalatedCases[0]
		Expect(c.DisputeResolutionID).To(Equal("ESC-2026-001"))
		Expect(c.ConfidenceScore).To(Equal("67"))
		Expect(c.ResolutionDetails.ApprovalAmount).To(Equal(1250.0))
		Expect(c.EscalationInfo.EscalationPriority).To(Equal("high"))
		Expect(c.EscalationInfo.AssignedDepartment).NotTo(BeNil())
		Expect(*c.EscalationInfo.AssignedDepartment).To(Equal("Fraud Review Team"))
		Expect(c.Approved()).To(BeFalse())
	})

	It("loads the disputed transactions in order", func() {
		d, err := fixtures.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(d.DisputedTransactions).To(HaveLen(2))
		Expect(d.DisputedTransactions[0].TransactionID).To(Equal("TXN-2024-98765"))
		Expect(d.DisputedTransactions[0].Amount).To(Equal(250.0))
		Expect(d.DisputedTransactions[1].Amount).To(Equal(89.99))
		Expect(d.DisputedTransactions[1].Type).To(Equal("product_not_received"))
	})

	It("rejects a case without an id", func() {
		_, err := fixtures.Parse([]byte("escalated_cases:\n  - final_decision: escalate\n"))
		Expect(err).To(MatchError(ContainSubstring("dispute_resolution_id")))
	})

	It("seeds both stores", func() {
		d, err := fixtures.Load()
		Expect(err).NotTo(HaveOccurred())

		cases, txs := &caseSink{}, &txSink{}
		Expect(fixtures.Seed(context.Background(), d, cases, txs)).To(Succeed())

		Expect(cases.rows).To(HaveLen(1))
		Expect(cases.rows[0].CaseID).To(Equal("ESC-2026-001"))
		Expect(cases.rows[0].Priority).To(Equal("high"))

		back, err := cases.rows[0].Analysis()
		Expect(err).NotTo(HaveOccurred())
		Expect(back.ManagerNotes).To(HavePrefix("Case escalated"))

		Expect(txs.rows).To(HaveLen(2))
	})
})
