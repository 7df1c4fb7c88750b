package portal_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/agent"
	"disputedesk/internal/portal"
	"disputedesk/internal/upload"
)

var _ = Describe("Session", func() {
	now := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	Describe("CanSubmit", func() {
		It("is disabled for a customer without a result", func() {
			s := portal.NewSession("1", portal.KindCustomer, 5, now)
			s.State = portal.StateActive
			Expect(s.CanSubmit()).To(BeFalse())
		})

		It("follows the agent's completeness flag for customers", func() {
			s := portal.NewSession("1", portal.KindCustomer, 5, now)
			s.State = portal.StateActive
			s.Dispute = &agent.DisputeConversationResult{InformationComplete: false}
			Expect(s.CanSubmit()).To(BeFalse())

			s.Dispute = &agent.DisputeConversationResult{InformationComplete: true}
			Expect(s.CanSubmit()).To(BeTrue())
		})

		It("is disabled while loading", func() {
			s := portal.NewSession("1", portal.KindCustomer, 5, now)
			s.State = portal.StateActive
			s.Dispute = &agent.DisputeConversationResult{InformationComplete: true}
			s.Loading = true
			Expect(s.CanSubmit()).To(BeFalse())
		})

		It("follows transaction_found for merchants", func() {
			s := portal.NewSession("1", portal.KindMerchant, 10, now)
			s.State = portal.StateActive
			s.Validation = &agent.TransactionValidationResult{}
			Expect(s.CanSubmit()).To(BeFalse())

			s.Validation.MerchantData.TransactionFound = true
			Expect(s.CanSubmit()).To(BeTrue())
		})

		It("is never enabled for support or outside the active state", func() {
			s := portal.NewSession("1", portal.KindSupport, 5, now)
			s.State = portal.StateActive
			Expect(s.CanSubmit()).To(BeFalse())

			c := portal.NewSession("2", portal.KindCustomer, 5, now)
			c.Dispute = &agent.DisputeConversationResult{InformationComplete: true}
			c.State = portal.StateResultShown
			Expect(c.CanSubmit()).To(BeFalse())
		})
	})

	It("Reset clears conversation, results and attachments but keeps the cap", func() {
		s := portal.NewSession("1", portal.KindMerchant, 10, now)
		s.State = portal.StateResultShown
		s.Transcript.Seed(portal.ChatMessage{Role: portal.RoleAgent, Content: "hi"})
		s.TransactionID = "TXN-1"
		s.Validation = &agent.TransactionValidationResult{}
		s.CaseAnalysis = &agent.CaseAnalysisResult{}
		s.AttachedAssetIDs = []string{"a"}
		s.Evidence.Pending = []upload.PendingFile{{Name: "x.pdf"}}

		s.Reset()

		Expect(s.State).To(Equal(portal.StateNotStarted))
		Expect(s.Transcript.Len()).To(BeZero())
		Expect(s.TransactionID).To(BeEmpty())
		Expect(s.Validation).To(BeNil())
		Expect(s.CaseAnalysis).To(BeNil())
		Expect(s.AttachedAssetIDs).To(BeEmpty())
		Expect(s.Evidence.Pending).To(BeEmpty())
		Expect(s.Evidence.MaxFiles).To(Equal(10))
	})

	It("ParseKind accepts only the three portals", func() {
		k, ok := portal.ParseKind("merchant")
		Expect(ok).To(BeTrue())
		Expect(k).To(Equal(portal.KindMerchant))

		_, ok = portal.ParseKind("landing")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("prompts", func() {
	It("interpolates the dispute summary into the analysis request", func() {
		d := &agent.DisputeConversationResult{
			DisputeType:       "unauthorized",
			Amount:            89.99,
			MerchantName:      "Acme Books",
			TransactionDate:   "2024-02-01",
			CustomerNarrative: "I never ordered this.",
		}
		Expect(portal.DisputeAnalysisPrompt(d)).To(Equal(
			"Process dispute for transaction: Customer disputes unauthorized charge of $89.99 from Acme Books on 2024-02-01. I never ordered this.",
		))

		d.Amount = 250
		Expect(portal.DisputeAnalysisPrompt(d)).To(ContainSubstring("charge of $250 from"))
	})

	It("prefixes merchant turns with the transaction", func() {
		Expect(portal.ValidationPrompt("TXN-2024-98765", "signed receipt attached")).
			To(Equal("Validate transaction TXN-2024-98765: signed receipt attached"))
		Expect(portal.MerchantWelcome("TXN-2024-98765")).To(HavePrefix("I'm here to help you validate transaction TXN-2024-98765."))
	})

	It("falls back when the agent left the reply field empty", func() {
		Expect(portal.CustomerReply(&agent.DisputeConversationResult{})).To(Equal("Thank you for providing that information."))
		Expect(portal.CustomerReply(&agent.DisputeConversationResult{NextSteps: "When was it?"})).To(Equal("When was it?"))
	})

	It("summarises discrepancies for case analysis", func() {
		v := &agent.TransactionValidationResult{ValidationStatus: "verified"}
		v.DiscrepancyAnalysis.DiscrepanciesFound = []string{"amount differs", "date differs"}
		v.ValidationRecommendation.Confidence = 0.82
		Expect(portal.CaseAnalysisPrompt("TXN-1", v)).To(ContainSubstring("discrepancies: amount differs; date differs"))
		Expect(portal.CaseAnalysisPrompt("TXN-1", v)).To(ContainSubstring("confidence 0.82"))
	})
})

var _ = Describe("Catalog", func() {
	It("lists the three portals in landing order", func() {
		kinds := []portal.Kind{}
		for _, d := range portal.Catalog() {
			kinds = append(kinds, d.Kind)
		}
		Expect(kinds).To(Equal([]portal.Kind{portal.KindCustomer, portal.KindSupport, portal.KindMerchant}))
	})
})
