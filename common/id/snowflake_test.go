package id_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fractal.app/api/common/id"
)

var _ = Describe("Snowflake IDs", func() {
	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
	})

	It("generates increasing unique ids", func() {
		seen := map[int64]bool{}
		prev := int64(0)
		for range 1000 {
			v := id.New()
			Expect(seen).NotTo(HaveKey(v))
			Expect(v).To(BeNumerically(">", prev))
			seen[v] = true
			prev = v
		}
	})

	DescribeTable("Parse",
		func(input string, want int64, wantErr bool) {
			got, err := id.Parse(input)
			if wantErr {
				Expect(err).To(MatchError(id.ErrInvalidID))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("positive id", "1234567890123", int64(1234567890123), false),
		Entry("zero", "0", int64(0), true),
		Entry("negative", "-5", int64(0), true),
		Entry("not a number", "abc", int64(0), true),
		Entry("empty", "", int64(0), true),
	)
})
