package worker_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/worker"
)

var _ = Describe("Decode", func() {
	It("parses a queued message and clears the row id", func() {
		msg, err := worker.Decode([]byte(`{"id":9,"session_id":"77","portal":"customer","role":"user","content":"hi","sent_at":"2026-02-03T10:00:00Z"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(BeZero())
		Expect(msg.SessionID).To(Equal("77"))
		Expect(msg.Portal).To(Equal("customer"))
		Expect(msg.SentAt.Year()).To(Equal(2026))
	})

	It("rejects malformed bodies", func() {
		_, err := worker.Decode([]byte(`{`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects messages without a session", func() {
		_, err := worker.Decode([]byte(`{"role":"user","content":"hi"}`))
		Expect(err).To(MatchError(ContainSubstring("missing session")))
	})
})
