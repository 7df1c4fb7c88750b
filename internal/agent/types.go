package agent

// Result shapes returned by the remote agents. Field names mirror the agent
// output verbatim; values are snapshots and are replaced, never merged.

type DisputeConversationResult struct {
	TransactionID           *string `json:"transaction_id"`
	Amount                  float64 `json:"amount"`
	MerchantName            string  `json:"merchant_name"`
	TransactionDate         string  `json:"transaction_date"`
	DisputeType             string  `json:"dispute_type"`
	CustomerNarrative       string  `json:"customer_narrative"`
	Timeline                string  `json:"timeline"`
	PreviousContactAttempts *string `json:"previous_contact_attempts"`
	InformationComplete     bool    `json:"information_complete"`
	NextSteps               string  `json:"next_steps"`
}

type KnowledgeRetrievalResult struct {
	RetrievedPolicies   []RetrievedPolicy `json:"retrieved_policies"`
	RelevantFAQs        []FAQ             `json:"relevant_faqs"`
	HistoricalCases     []HistoricalCase  `json:"historical_cases"`
	KnowledgeSummary    string            `json:"knowledge_summary"`
	RetrievalConfidence string            `json:"retrieval_confidence"`
}

type RetrievedPolicy struct {
	PolicyID             string   `json:"policy_id"`
	PolicyName           string   `json:"policy_name"`
	PolicyContent        string   `json:"policy_content"`
	RelevanceScore       string   `json:"relevance_score"`
	ApplicableConditions []string `json:"applicable_conditions"`
}

type FAQ struct {
	FAQID    string `json:"faq_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type HistoricalCase struct {
	CaseID          string   `json:"case_id"`
	SimilarityScore string   `json:"similarity_score"`
	Outcome         string   `json:"outcome"`
	ResolutionTime  string   `json:"resolution_time"`
	KeyFactors      []string `json:"key_factors"`
}

type CaseAnalysisResult struct {
	CaseAnalysisID          string             `json:"case_analysis_id"`
	ResolutionConfidence    string             `json:"resolution_confidence"`
	PolicyCompliance        PolicyCompliance   `json:"policy_compliance"`
	EvidenceAssessment      EvidenceAssessment `json:"evidence_assessment"`
	RiskFactors             RiskFactors        `json:"risk_factors"`
	RecommendedAction       string             `json:"recommended_action"`
	EscalationRequired      bool               `json:"escalation_required"`
	EscalationReasons       []string           `json:"escalation_reasons"`
	EstimatedResolutionTime string             `json:"estimated_resolution_time"`
	AnalysisReasoning       string             `json:"analysis_reasoning"`
}

type PolicyCompliance struct {
	Compliant       bool     `json:"compliant"`
	MatchedPolicies []string `json:"matched_policies"`
	ComplianceScore string   `json:"compliance_score"`
}

type EvidenceAssessment struct {
	Strength     string   `json:"strength"`
	Completeness string   `json:"completeness"`
	Gaps         []string `json:"gaps"`
}

type RiskFactors struct {
	FinancialRisk   string   `json:"financial_risk"`
	FraudIndicators []string `json:"fraud_indicators"`
	ComplexityLevel string   `json:"complexity_level"`
}

// DisputeAnalysisManagerResult also carries yaml tags because escalated
// cases are seeded from YAML fixtures in the same shape.
type DisputeAnalysisManagerResult struct {
	DisputeResolutionID string            `json:"dispute_resolution_id" yaml:"dispute_resolution_id"`
	FinalDecision       string            `json:"final_decision" yaml:"final_decision"`
	ConfidenceScore     string            `json:"confidence_score" yaml:"confidence_score"`
	KnowledgeSummary    KnowledgeSummary  `json:"knowledge_summary" yaml:"knowledge_summary"`
	CaseEvaluation      CaseEvaluation    `json:"case_evaluation" yaml:"case_evaluation"`
	ResolutionDetails   ResolutionDetails `json:"resolution_details" yaml:"resolution_details"`
	EscalationInfo      EscalationInfo    `json:"escalation_info" yaml:"escalation_info"`
	ManagerNotes        string            `json:"manager_notes" yaml:"manager_notes"`
}

type KnowledgeSummary struct {
	ApplicablePolicies   []string `json:"applicable_policies" yaml:"applicable_policies"`
	HistoricalPrecedents string   `json:"historical_precedents" yaml:"historical_precedents"`
	PolicyAlignment      string   `json:"policy_alignment" yaml:"policy_alignment"`
}

type CaseEvaluation struct {
	ComplianceStatus string `json:"compliance_status" yaml:"compliance_status"`
	EvidenceQuality  string `json:"evidence_quality" yaml:"evidence_quality"`
	RiskLevel        string `json:"risk_level" yaml:"risk_level"`
}

type ResolutionDetails struct {
	RecommendedAction  string   `json:"recommended_action" yaml:"recommended_action"`
	ApprovalAmount     float64  `json:"approval_amount" yaml:"approval_amount"`
	ResolutionTimeline string   `json:"resolution_timeline" yaml:"resolution_timeline"`
	NextSteps          []string `json:"next_steps" yaml:"next_steps"`
}

type EscalationInfo struct {
	RequiresEscalation bool     `json:"requires_escalation" yaml:"requires_escalation"`
	EscalationPriority string   `json:"escalation_priority" yaml:"escalation_priority"`
	EscalationReasons  []string `json:"escalation_reasons" yaml:"escalation_reasons"`
	AssignedDepartment *string  `json:"assigned_department" yaml:"assigned_department"`
}

// Approved reports whether the manager auto-approved the dispute.
func (r *DisputeAnalysisManagerResult) Approved() bool {
	return r != nil && r.FinalDecision == "auto_approve"
}

type TransactionValidationResult struct {
	ValidationID             string                   `json:"validation_id"`
	TransactionID            string                   `json:"transaction_id"`
	ValidationStatus         string                   `json:"validation_status"`
	MerchantData             MerchantData             `json:"merchant_data"`
	DiscrepancyAnalysis      DiscrepancyAnalysis      `json:"discrepancy_analysis"`
	SupportingEvidence       SupportingEvidence       `json:"supporting_evidence"`
	FraudIndicators          FraudIndicators          `json:"fraud_indicators"`
	ValidationRecommendation ValidationRecommendation `json:"validation_recommendation"`
	MerchantNotes            string                   `json:"merchant_notes"`
}

type MerchantData struct {
	TransactionFound  bool     `json:"transaction_found"`
	RecordedAmount    *float64 `json:"recorded_amount"`
	RecordedDate      *string  `json:"recorded_date"`
	CustomerID        *string  `json:"customer_id"`
	AuthorizationCode *string  `json:"authorization_code"`
}

type DiscrepancyAnalysis struct {
	AmountMatch        bool     `json:"amount_match"`
	DateMatch          bool     `json:"date_match"`
	CustomerMatch      bool     `json:"customer_match"`
	DiscrepanciesFound []string `json:"discrepancies_found"`
}

type SupportingEvidence struct {
	DeliveryConfirmation bool     `json:"delivery_confirmation"`
	ServiceCompletion    bool     `json:"service_completion"`
	RefundProcessed      bool     `json:"refund_processed"`
	CommunicationLogs    []string `json:"communication_logs"`
}

type FraudIndicators struct {
	SuspiciousActivity bool     `json:"suspicious_activity"`
	RiskFlags          []string `json:"risk_flags"`
	FraudScore         float64  `json:"fraud_score"`
}

type ValidationRecommendation struct {
	RecommendedAction string  `json:"recommended_action"`
	Confidence        float64 `json:"confidence"`
	Reasoning         string  `json:"reasoning"`
}
