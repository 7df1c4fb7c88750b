package id_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"disputedesk/internal/id"
)

var _ = Describe("New", func() {
	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
	})

	It("returns distinct increasing numeric ids", func() {
		seen := map[string]bool{}
		var last int64
		for i := 0; i < 1000; i++ {
			s := id.New()
			Expect(seen).NotTo(HaveKey(s))
			seen[s] = true

			n, err := strconv.ParseInt(s, 10, 64)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeNumerically(">", last))
			last = n
		}
	})
})
