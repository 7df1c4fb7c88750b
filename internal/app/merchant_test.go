package app_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/agent"
	"disputedesk/internal/app"
	"disputedesk/internal/app/apptest"
	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
)

func foundValidation(reasoning string) agent.TransactionValidationResult {
	v := agent.TransactionValidationResult{
		TransactionID:    "TXN-2024-98765",
		ValidationStatus: "verified",
	}
	v.MerchantData.TransactionFound = true
	v.ValidationRecommendation.Reasoning = reasoning
	v.ValidationRecommendation.Confidence = 0.9
	return v
}

var _ = Describe("merchant validation", func() {
	var (
		h  *harness
		id string
	)

	BeforeEach(func() {
		h = newHarness()
		id = h.open(portal.KindMerchant)
	})

	It("lists the disputed transactions", func() {
		txs, err := h.svc.ListTransactions(h.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(txs).To(HaveLen(2))
		Expect(txs[0].TransactionID).To(Equal("TXN-2024-98765"))
		Expect(txs[1].Customer).To(Equal("John Smith"))
	})

	It("refuses unknown transactions", func() {
		_, err := h.svc.StartValidation(h.ctx, id, "TXN-0000")
		Expect(err).To(MatchError(app.ErrTransactionNotFound))
	})

	It("refuses merchant operations from another portal", func() {
		customer := h.open(portal.KindCustomer)
		_, err := h.svc.StartValidation(h.ctx, customer, "TXN-2024-98765")
		Expect(err).To(MatchError(app.ErrWrongPortal))
	})

	Context("with a transaction selected", func() {
		BeforeEach(func() {
			view, err := h.svc.StartValidation(h.ctx, id, "TXN-2024-98765")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.State).To(Equal(portal.StateActive))
			Expect(view.TransactionID).To(Equal("TXN-2024-98765"))
			Expect(view.Messages).To(HaveLen(1))
			Expect(view.Messages[0].Content).To(Equal(portal.MerchantWelcome("TXN-2024-98765")))
		})

		It("prefixes each turn with the transaction and replies with the reasoning", func() {
			h.replyWith(foundValidation("Delivery was confirmed by signature."))

			view, err := h.svc.SendValidationMessage(h.ctx, id, "We have a signed delivery receipt")
			Expect(err).NotTo(HaveOccurred())
			Expect(h.agents.Calls).To(Equal([]apptest.Call{{
				Message: "Validate transaction TXN-2024-98765: We have a signed delivery receipt",
				AgentID: agent.TransactionValidation,
			}}))
			Expect(view.Messages).To(HaveLen(3))
			Expect(view.Messages[1].Content).To(Equal("We have a signed delivery receipt"))
			Expect(view.Messages[2].Content).To(Equal("Delivery was confirmed by signature."))
			Expect(view.CanSubmit).To(BeTrue())
		})

		It("keeps submit disabled until the transaction is found", func() {
			v := foundValidation("Could not find it.")
			v.MerchantData.TransactionFound = false
			h.replyWith(v)

			view, err := h.svc.SendValidationMessage(h.ctx, id, "check it")
			Expect(err).NotTo(HaveOccurred())
			Expect(view.CanSubmit).To(BeFalse())

			_, err = h.svc.SubmitValidation(h.ctx, id)
			Expect(err).To(MatchError(app.ErrSubmitNotReady))
		})

		It("uses the validation failure notices", func() {
			h.replyWith(apptest.Rejected(), errors.New("timeout"))

			_, err := h.svc.SendValidationMessage(h.ctx, id, "one")
			Expect(err).To(MatchError(app.ErrAgentUnavailable))
			_, err = h.svc.SendValidationMessage(h.ctx, id, "two")
			Expect(err).To(MatchError(app.ErrAgentUnavailable))

			Expect(h.notices.Messages(notify.KindError)).To(Equal([]string{
				"Failed to process validation. Please try again.",
				"An error occurred during validation.",
			}))
			view, err := h.svc.View(h.ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Messages).To(HaveLen(3))
		})

		It("submits the validation for case analysis", func() {
			h.replyWith(foundValidation("Looks legitimate."))
			_, err := h.svc.SendValidationMessage(h.ctx, id, "receipt attached")
			Expect(err).NotTo(HaveOccurred())

			h.replyWith(agent.CaseAnalysisResult{CaseAnalysisID: "CA-1", RecommendedAction: "deny_dispute"})
			view, err := h.svc.SubmitValidation(h.ctx, id)
			Expect(err).NotTo(HaveOccurred())

			last := h.agents.Calls[len(h.agents.Calls)-1]
			Expect(last.AgentID).To(Equal(agent.CaseAnalysis))
			Expect(last.Message).To(HavePrefix("Analyze merchant validation for transaction TXN-2024-98765"))

			Expect(view.State).To(Equal(portal.StateResultShown))
			Expect(view.CaseAnalysis.CaseAnalysisID).To(Equal("CA-1"))
			Expect(h.notices.Messages(notify.KindSuccess)).To(ContainElement("Validation submitted successfully!"))
		})

		It("cancels back to the transaction list", func() {
			h.replyWith(foundValidation("ok"))
			_, err := h.svc.SendValidationMessage(h.ctx, id, "receipt attached")
			Expect(err).NotTo(HaveOccurred())

			view, err := h.svc.CancelValidation(h.ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.State).To(Equal(portal.StateNotStarted))
			Expect(view.TransactionID).To(BeEmpty())
			Expect(view.Validation).To(BeNil())
			Expect(view.Messages).To(BeEmpty())

			_, err = h.svc.CancelValidation(h.ctx, id)
			Expect(err).To(MatchError(app.ErrInvalidState))
		})
	})
})
