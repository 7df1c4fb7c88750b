package pdfextract_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/pkg/pdfextract"
)

var _ = Describe("Summarize", func() {
	It("fails for a missing file", func() {
		_, err := pdfextract.Summarize(filepath.Join(GinkgoT().TempDir(), "missing.pdf"), 100)
		Expect(err).To(HaveOccurred())
	})

	It("fails for a file that is not a PDF", func() {
		path := filepath.Join(GinkgoT().TempDir(), "receipt.pdf")
		Expect(os.WriteFile(path, []byte("just some text"), 0o600)).To(Succeed())

		summary, err := pdfextract.Summarize(path, 100)
		Expect(err).To(HaveOccurred())
		Expect(summary).To(BeNil())
	})
})
