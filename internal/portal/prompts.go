package portal

import (
	"fmt"
	"strconv"
	"strings"

	"disputedesk/internal/agent"
)

const (
	CustomerWelcome       = "Hello! I'm here to help you with your credit dispute. Can you tell me about the transaction you'd like to dispute?"
	customerFallbackReply = "Thank you for providing that information."
	merchantFallbackReply = "Validation updated. Please share any further evidence."
)

func MerchantWelcome(transactionID string) string {
	return fmt.Sprintf("I'm here to help you validate transaction %s. Please provide any evidence you have such as delivery confirmation, customer signatures, or authorization records.", transactionID)
}

func ValidationPrompt(transactionID, text string) string {
	return fmt.Sprintf("Validate transaction %s: %s", transactionID, text)
}

// CustomerReply is the agent turn shown after a dispute-conversation result.
func CustomerReply(r *agent.DisputeConversationResult) string {
	if r == nil || strings.TrimSpace(r.NextSteps) == "" {
		return customerFallbackReply
	}
	return r.NextSteps
}

func MerchantReply(r *agent.TransactionValidationResult) string {
	if r == nil || strings.TrimSpace(r.ValidationRecommendation.Reasoning) == "" {
		return merchantFallbackReply
	}
	return r.ValidationRecommendation.Reasoning
}

func DisputeAnalysisPrompt(d *agent.DisputeConversationResult) string {
	return fmt.Sprintf("Process dispute for transaction: Customer disputes %s charge of $%s from %s on %s. %s",
		d.DisputeType,
		formatAmount(d.Amount),
		d.MerchantName,
		d.TransactionDate,
		d.CustomerNarrative,
	)
}

func CaseAnalysisPrompt(transactionID string, v *agent.TransactionValidationResult) string {
	discrepancies := "none"
	if len(v.DiscrepancyAnalysis.DiscrepanciesFound) > 0 {
		discrepancies = strings.Join(v.DiscrepancyAnalysis.DiscrepanciesFound, "; ")
	}
	return fmt.Sprintf("Analyze merchant validation for transaction %s: status %s, recommended action %s with confidence %s, discrepancies: %s, fraud score %s. %s",
		transactionID,
		v.ValidationStatus,
		v.ValidationRecommendation.RecommendedAction,
		formatAmount(v.ValidationRecommendation.Confidence),
		discrepancies,
		formatAmount(v.FraudIndicators.FraudScore),
		v.MerchantNotes,
	)
}

func KnowledgePrompt(c *agent.DisputeAnalysisManagerResult) string {
	return fmt.Sprintf("Retrieve policies, FAQs and historical cases for dispute %s. Applicable policies: %s. Escalation reasons: %s. Recommended action: %s",
		c.DisputeResolutionID,
		strings.Join(c.KnowledgeSummary.ApplicablePolicies, ", "),
		strings.Join(c.EscalationInfo.EscalationReasons, ", "),
		c.ResolutionDetails.RecommendedAction,
	)
}

// formatAmount prints the shortest decimal form, 250 and 89.99 rather than
// 250.000000.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
