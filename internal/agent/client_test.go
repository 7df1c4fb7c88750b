package agent_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/agent"
)

var _ = Describe("Client", func() {
	var (
		server  *httptest.Server
		handler http.HandlerFunc
		client  *agent.Client
	)

	BeforeEach(func() {
		handler = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
		client = agent.NewClient(agent.Config{Endpoint: server.URL, APIKey: "k-123"})
	})

	AfterEach(func() {
		server.Close()
	})

	It("posts the message and agent id and decodes the envelope", func() {
		var got agent.Request
		var auth string
		handler = func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
			_, _ = w.Write([]byte(`{"success":true,"response":{"status":"success","result":{"next_steps":"Tell me more","information_complete":false,"amount":42.5}}}`))
		}

		res, err := client.Call(context.Background(), "I was double charged", agent.DisputeConversation)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Message).To(Equal("I was double charged"))
		Expect(got.AgentID).To(Equal(agent.DisputeConversation))
		Expect(auth).To(Equal("Bearer k-123"))
		Expect(res.OK()).To(BeTrue())

		data, err := agent.Decode[agent.DisputeConversationResult](res)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.NextSteps).To(Equal("Tell me more"))
		Expect(data.Amount).To(Equal(42.5))
		Expect(data.TransactionID).To(BeNil())
	})

	It("returns an error on non-2xx status", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}

		res, err := client.Call(context.Background(), "hi", agent.CaseAnalysis)
		Expect(err).To(MatchError(ContainSubstring("status 502")))
		Expect(res).To(BeNil())
	})

	It("returns an error when the body is not json", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}

		_, err := client.Call(context.Background(), "hi", agent.CaseAnalysis)
		Expect(err).To(MatchError(ContainSubstring("parse agent json failed")))
	})
})

var _ = Describe("Decode", func() {
	It("treats a non-success status as failure", func() {
		res := &agent.Result{Success: true, Response: agent.Response{Status: "error", Result: json.RawMessage(`{}`)}}
		Expect(res.OK()).To(BeFalse())

		_, err := agent.Decode[agent.CaseAnalysisResult](res)
		Expect(err).To(MatchError(agent.ErrAgentFailed))
	})

	It("treats success=false as failure even with a success status", func() {
		res := &agent.Result{Success: false, Response: agent.Response{Status: agent.StatusSuccess}}
		_, err := agent.Decode[agent.CaseAnalysisResult](res)
		Expect(err).To(MatchError(agent.ErrAgentFailed))
	})

	It("accepts a result encoded as a json string", func() {
		res := &agent.Result{Success: true, Response: agent.Response{
			Status: agent.StatusSuccess,
			Result: json.RawMessage(`"{\"validation_id\":\"V-1\",\"merchant_data\":{\"transaction_found\":true}}"`),
		}}

		data, err := agent.Decode[agent.TransactionValidationResult](res)
		Expect(err).NotTo(HaveOccurred())
		Expect(data.ValidationID).To(Equal("V-1"))
		Expect(data.MerchantData.TransactionFound).To(BeTrue())
	})

	It("rejects an empty or null result", func() {
		res := &agent.Result{Success: true, Response: agent.Response{Status: agent.StatusSuccess, Result: json.RawMessage(`null`)}}
		_, err := agent.Decode[agent.KnowledgeRetrievalResult](res)
		Expect(err).To(MatchError(agent.ErrMalformedResult))
	})

	It("rejects a result of the wrong shape", func() {
		res := &agent.Result{Success: true, Response: agent.Response{Status: agent.StatusSuccess, Result: json.RawMessage(`[1,2]`)}}
		_, err := agent.Decode[agent.KnowledgeRetrievalResult](res)
		Expect(err).To(MatchError(agent.ErrMalformedResult))
	})
})

var _ = Describe("DisputeAnalysisManagerResult", func() {
	It("reports auto approval", func() {
		Expect((&agent.DisputeAnalysisManagerResult{FinalDecision: "auto_approve"}).Approved()).To(BeTrue())
		Expect((&agent.DisputeAnalysisManagerResult{FinalDecision: "pending_review"}).Approved()).To(BeFalse())
	})
})
