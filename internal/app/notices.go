package app

// User-facing notification texts.
const (
	noticeCustomerReject     = "Failed to process your message. Please try again."
	noticeCustomerTransport  = "An error occurred. Please try again."
	noticeAnalysisDone       = "Dispute analysis completed successfully!"
	noticeAnalysisReject     = "Failed to analyze dispute. Please try again."
	noticeAnalysisTransport  = "An error occurred during analysis."
	noticeDocumentsUploaded  = "Uploaded %d document(s)"
	noticeEvidenceUploaded   = "Uploaded %d evidence file(s)"
	noticeValidationReject   = "Failed to process validation. Please try again."
	noticeValidationFailed   = "An error occurred during validation."
	noticeValidationDone     = "Validation submitted successfully!"
	noticeCaseAnalysisReject = "Failed to analyze validation. Please try again."
	noticeKnowledgeReject    = "Failed to retrieve knowledge. Please try again."
	noticeKnowledgeFailed    = "An error occurred during knowledge retrieval."
)
