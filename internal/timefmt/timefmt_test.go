package timefmt_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duvalivy/planrh/internal/timefmt"
)

func TestTimefmt(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timefmt Suite")
}

var _ = Describe("ValidDate", func() {
	It("should accept zero-padded calendar dates", func() {
		Expect(timefmt.ValidDate("2026-01-05")).To(BeTrue())
		Expect(timefmt.ValidDate("2024-02-29")).To(BeTrue())
	})

	It("should reject impossible dates", func() {
		Expect(timefmt.ValidDate("2026-02-30")).To(BeFalse())
		Expect(timefmt.ValidDate("2026-13-01")).To(BeFalse())
		Expect(timefmt.ValidDate("2025-02-29")).To(BeFalse())
	})

	It("should reject unpadded or malformed dates", func() {
		Expect(timefmt.ValidDate("2026-1-5")).To(BeFalse())
		Expect(timefmt.ValidDate("05/01/2026")).To(BeFalse())
		Expect(timefmt.ValidDate("")).To(BeFalse())
		Expect(timefmt.ValidDate("2026-01-05T00:00:00Z")).To(BeFalse())
	})
})

var _ = Describe("ValidTime", func() {
	It("should accept zero-padded clock times", func() {
		Expect(timefmt.ValidTime("00:00")).To(BeTrue())
		Expect(timefmt.ValidTime("08:30")).To(BeTrue())
		Expect(timefmt.ValidTime("23:59")).To(BeTrue())
	})

	It("should reject out-of-range times", func() {
		Expect(timefmt.ValidTime("24:00")).To(BeFalse())
		Expect(timefmt.ValidTime("12:60")).To(BeFalse())
	})

	It("should reject unpadded or malformed times", func() {
		Expect(timefmt.ValidTime("8:30")).To(BeFalse())
		Expect(timefmt.ValidTime("08:30:00")).To(BeFalse())
		Expect(timefmt.ValidTime("")).To(BeFalse())
	})
})
