package matricule_test

import (
	"errors"
	"regexp"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duvalivy/planrh/pkg/matricule"
)

func TestMatricule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Matricule Suite")
}

var _ = Describe("Shape", func() {
	Describe("New", func() {
		It("should produce candidates matching the absence shape", func() {
			re := regexp.MustCompile(`^ABS[0-9]{6}[A-Z]{2}$`)
			for i := 0; i < 50; i++ {
				Expect(matricule.ShapeAbsence.New()).To(MatchRegexp(re.String()))
			}
		})

		It("should produce candidates matching the service shape", func() {
			Expect(matricule.ShapeService.New()).To(MatchRegexp(`^SERV[0-9]{3}[A-Z]{3}$`))
		})

		It("should produce candidates matching the speciality shape", func() {
			Expect(matricule.ShapeSpeciality.New()).To(MatchRegexp(`^COM[0-9]{3}[A-Z]{3}$`))
		})

		It("should produce candidates matching the pole shape", func() {
			Expect(matricule.ShapePole.New()).To(MatchRegexp(`^PO[0-9]{3}[A-Z]{3}$`))
		})

		It("should produce candidates matching the activity code shape", func() {
			Expect(matricule.ShapeCode.New()).To(MatchRegexp(`^CODE[0-9]{5}[A-Z]$`))
		})
	})

	Describe("UserShape", func() {
		It("should prefix admin matricules with ADM", func() {
			Expect(matricule.UserShape("admin").New()).To(MatchRegexp(`^ADM[0-9]{6}[A-Z]{4}$`))
		})

		It("should prefix cadre matricules with CAD", func() {
			Expect(matricule.UserShape("cadre").New()).To(MatchRegexp(`^CAD[0-9]{6}[A-Z]{4}$`))
		})

		It("should prefix nurse matricules with INF", func() {
			Expect(matricule.UserShape("nurse").New()).To(MatchRegexp(`^INF[0-9]{6}[A-Z]{4}$`))
		})

		It("should fall back to USR for unknown roles", func() {
			Expect(matricule.UserShape("visitor").New()).To(MatchRegexp(`^USR[0-9]{6}[A-Z]{4}$`))
		})

		It("should ignore role casing", func() {
			Expect(matricule.UserShape("Admin").New()).To(MatchRegexp(`^ADM`))
		})
	})
})

var _ = Describe("Generate", func() {
	It("should return the first candidate when nothing collides", func() {
		calls := 0
		m, err := matricule.Generate(matricule.ShapeCode, func(string) (bool, error) {
			calls++
			return false, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(MatchRegexp(`^CODE[0-9]{5}[A-Z]$`))
		Expect(calls).To(Equal(1))
	})

	It("should retry until a free candidate is found", func() {
		taken := 3
		m, err := matricule.Generate(matricule.ShapeService, func(string) (bool, error) {
			if taken > 0 {
				taken--
				return true, nil
			}
			return false, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(MatchRegexp(`^SERV[0-9]{3}[A-Z]{3}$`))
	})

	It("should widen the digit suffix once the retry budget is exhausted", func() {
		calls := 0
		m, err := matricule.Generate(matricule.ShapePole, func(string) (bool, error) {
			calls++
			// Reject every candidate of the original width.
			return calls <= 25, nil
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(m).To(MatchRegexp(`^PO[0-9]{4}[A-Z]{3}$`))
	})

	It("should surface lookup errors", func() {
		boom := errors.New("db down")
		_, err := matricule.Generate(matricule.ShapeAbsence, func(string) (bool, error) {
			return false, boom
		})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, boom)).To(BeTrue())
	})
})
