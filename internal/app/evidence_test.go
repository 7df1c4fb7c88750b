package app_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/app"
	"disputedesk/internal/notify"
	"disputedesk/internal/portal"
	"disputedesk/internal/upload"
)

func memFiles(n int, ext string) []app.IncomingFile {
	out := make([]app.IncomingFile, n)
	for i := range out {
		out[i] = memFile(fmt.Sprintf("doc-%d%s", i, ext), fmt.Sprintf("content %d", i))
	}
	return out
}

var _ = Describe("evidence upload", func() {
	var (
		h  *harness
		id string
	)

	BeforeEach(func() {
		h = newHarness()
		id = h.open(portal.KindCustomer)
	})

	stagedCount := func() int {
		entries, err := os.ReadDir(filepath.Join(h.dir, "staging", id))
		if os.IsNotExist(err) {
			return 0
		}
		Expect(err).NotTo(HaveOccurred())
		return len(entries)
	}

	It("caps the pending list and reports the overflow once", func() {
		view, err := h.svc.StageEvidence(h.ctx, id, memFiles(7, ".txt"))
		Expect(err).NotTo(HaveOccurred())

		Expect(view.Evidence.Pending).To(HaveLen(5))
		Expect(view.Evidence.Pending[4].Name).To(Equal("doc-4.txt"))
		Expect(view.Evidence.Pending[0].SizeLabel).To(Equal("9 B"))
		Expect(h.notices.Messages(notify.KindError)).To(Equal([]string{"Maximum 5 files allowed"}))
		Expect(stagedCount()).To(Equal(5))
	})

	It("never reads files that do not fit", func() {
		opened := 0
		counted := func(in []app.IncomingFile) []app.IncomingFile {
			for i := range in {
				open := in[i].Open
				in[i].Open = func() (io.ReadCloser, error) {
					opened++
					return open()
				}
			}
			return in
		}

		_, err := h.svc.StageEvidence(h.ctx, id, counted(memFiles(7, ".txt")))
		Expect(err).NotTo(HaveOccurred())
		Expect(opened).To(Equal(5))

		view, err := h.svc.StageEvidence(h.ctx, id, counted(memFiles(2, ".txt")))
		Expect(err).NotTo(HaveOccurred())
		Expect(opened).To(Equal(5))
		Expect(view.Evidence.Pending).To(HaveLen(5))
		Expect(h.notices.Messages(notify.KindError)).To(Equal([]string{
			"Maximum 5 files allowed",
			"Maximum 5 files allowed",
		}))
		Expect(stagedCount()).To(Equal(5))
	})

	It("does not bring back a session left while files are staged", func() {
		leaving := memFile("late.txt", "late")
		open := leaving.Open
		leaving.Open = func() (io.ReadCloser, error) {
			Expect(h.svc.Leave(h.ctx, id)).To(Succeed())
			return open()
		}

		_, err := h.svc.StageEvidence(h.ctx, id, []app.IncomingFile{leaving})
		Expect(err).To(MatchError(app.ErrSessionNotFound))

		_, err = h.svc.View(h.ctx, id)
		Expect(err).To(MatchError(app.ErrSessionNotFound))
		Expect(stagedCount()).To(Equal(0))
		Expect(h.guard.Held(id)).To(BeFalse())
	})

	It("removes a pending file and its staged copy", func() {
		_, err := h.svc.StageEvidence(h.ctx, id, memFiles(2, ".txt"))
		Expect(err).NotTo(HaveOccurred())

		view, err := h.svc.RemoveEvidence(h.ctx, id, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(view.Evidence.Pending).To(HaveLen(1))
		Expect(view.Evidence.Pending[0].Name).To(Equal("doc-1.txt"))
		Expect(stagedCount()).To(Equal(1))

		_, err = h.svc.RemoveEvidence(h.ctx, id, 5)
		Expect(err).To(MatchError(upload.ErrIndexOutOfRange))
	})

	It("refuses to upload an empty list", func() {
		view, err := h.svc.UploadEvidence(h.ctx, id)
		Expect(err).To(MatchError(upload.ErrNothingToUpload))
		Expect(view).NotTo(BeNil())
		Expect(h.notices.Messages(notify.KindError)).To(Equal([]string{"No files selected"}))
	})

	It("uploads pending files and attaches the assets", func() {
		_, err := h.svc.StageEvidence(h.ctx, id, memFiles(2, ".txt"))
		Expect(err).NotTo(HaveOccurred())

		view, err := h.svc.UploadEvidence(h.ctx, id)
		Expect(err).NotTo(HaveOccurred())

		Expect(view.Evidence.Pending).To(BeEmpty())
		Expect(view.Evidence.Uploaded).To(HaveLen(2))
		Expect(view.Evidence.Uploaded[0].Success).To(BeTrue())
		Expect(view.AttachedAssetIDs).To(HaveLen(2))
		Expect(view.AttachedAssetIDs).To(ConsistOf(view.Evidence.Uploaded[0].AssetID, view.Evidence.Uploaded[1].AssetID))

		for _, assetID := range view.AttachedAssetIDs {
			Expect(h.assets.Rows).To(HaveKey(assetID))
			Expect(h.assets.Rows[assetID].SessionID).To(Equal(id))
		}
		Expect(h.notices.Messages(notify.KindSuccess)).To(Equal([]string{
			"Successfully uploaded 2 file(s)",
			"Uploaded 2 document(s)",
		}))
		Expect(stagedCount()).To(Equal(0))
	})

	It("words the merchant confirmation as evidence", func() {
		merchant := h.open(portal.KindMerchant)
		_, err := h.svc.StageEvidence(h.ctx, merchant, memFiles(1, ".pdf"))
		Expect(err).NotTo(HaveOccurred())

		_, err = h.svc.UploadEvidence(h.ctx, merchant)
		Expect(err).NotTo(HaveOccurred())
		Expect(h.notices.Messages(notify.KindSuccess)).To(ContainElement("Uploaded 1 evidence file(s)"))
	})

	It("keeps the pending list when every file is rejected", func() {
		_, err := h.svc.StageEvidence(h.ctx, id, memFiles(2, ".exe"))
		Expect(err).NotTo(HaveOccurred())

		view, err := h.svc.UploadEvidence(h.ctx, id)
		Expect(err).To(MatchError(upload.ErrUploadRejected))
		Expect(view.Evidence.Pending).To(HaveLen(2))
		Expect(view.Evidence.Uploaded).To(BeEmpty())
		Expect(view.AttachedAssetIDs).To(BeEmpty())
		Expect(h.notices.Messages(notify.KindError)).To(Equal([]string{"No files could be uploaded"}))
		Expect(stagedCount()).To(Equal(2))
	})

	It("clears staged files when the portal is closed", func() {
		_, err := h.svc.StageEvidence(h.ctx, id, memFiles(3, ".txt"))
		Expect(err).NotTo(HaveOccurred())

		Expect(h.svc.Leave(h.ctx, id)).To(Succeed())
		Expect(stagedCount()).To(Equal(0))
	})
})
