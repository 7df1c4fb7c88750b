package upload_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/upload"
)

var _ = Describe("HTTPUploader", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("posts every file under the repeated files field", func() {
		p1 := filepath.Join(dir, "a.txt")
		p2 := filepath.Join(dir, "b.txt")
		Expect(os.WriteFile(p1, []byte("alpha"), 0o600)).To(Succeed())
		Expect(os.WriteFile(p2, []byte("beta"), 0o600)).To(Succeed())

		var path string
		var names, bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for _, fh := range r.MultipartForm.File["files"] {
				names = append(names, fh.Filename)
				f, _ := fh.Open()
				b, _ := io.ReadAll(f)
				_ = f.Close()
				bodies = append(bodies, string(b))
			}
			_ = json.NewEncoder(w).Encode(upload.Response{Success: true, AssetIDs: []string{"1", "2"}, SuccessfulUploads: 2})
		}))
		defer server.Close()

		resp, err := upload.NewHTTPUploader(server.URL).Upload(context.Background(), []upload.PendingFile{
			{Name: "a.txt", Path: p1},
			{Name: "b.txt", Path: p2},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(upload.Path))
		Expect(resp.AssetIDs).To(Equal([]string{"1", "2"}))
		Expect(names).To(Equal([]string{"a.txt", "b.txt"}))
		Expect(bodies).To(Equal([]string{"alpha", "beta"}))
	})

	It("decodes a rejected batch from a 4xx body", func() {
		p := filepath.Join(dir, "a.exe")
		Expect(os.WriteFile(p, []byte("x"), 0o600)).To(Succeed())
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"files":[],"asset_ids":[],"successful_uploads":0,"message":"No files were uploaded"}`))
		}))
		defer server.Close()

		resp, err := upload.NewHTTPUploader(server.URL).Upload(context.Background(), []upload.PendingFile{{Name: "a.exe", Path: p}})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Success).To(BeFalse())
		Expect(resp.Message).To(Equal("No files were uploaded"))
	})

	It("fails when a pending file is missing on disk", func() {
		_, err := upload.NewHTTPUploader("http://127.0.0.1:1").Upload(context.Background(), []upload.PendingFile{
			{Name: "gone.pdf", Path: filepath.Join(dir, "gone.pdf")},
		})
		Expect(err).To(MatchError(ContainSubstring("open gone.pdf failed")))
	})
})
