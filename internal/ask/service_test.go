package ask_test

import (
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/duvalivy/planrh/internal/ask"
	"github.com/duvalivy/planrh/internal/ask/postgres"
	"github.com/duvalivy/planrh/pkg/docid"
)

func TestAsk(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ask Suite")
}

var _ = Describe("Ask Service", func() {
	var service *ask.Service

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&ask.Ask{})).To(Succeed())
		service = ask.NewService(
			postgres.NewAskRepository(db),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
	})

	newDTO := func() ask.CreateDTO {
		return ask.CreateDTO{
			AbsenceID:   docid.New(),
			ColleagueID: docid.New(),
			Status:      "envoyée",
		}
	}

	Describe("Create", func() {
		It("should record the request as sent", func() {
			a, err := service.Create(newDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(a.ID).To(HaveLen(24))
			Expect(a.Status).To(Equal("envoyée"))
		})

		It("should require an absence id", func() {
			dto := newDTO()
			dto.AbsenceID = " "
			_, err := service.Create(dto)
			Expect(err).To(Equal(ask.ErrAbsenceRequired))
		})

		It("should require a colleague id", func() {
			dto := newDTO()
			dto.ColleagueID = ""
			_, err := service.Create(dto)
			Expect(err).To(Equal(ask.ErrColleagueRequired))
		})
	})

	Describe("ListByColleague", func() {
		It("should return only the colleague's requests", func() {
			first, err := service.Create(newDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Create(newDTO())
			Expect(err).ToNot(HaveOccurred())

			items, err := service.ListByColleague(first.ColleagueID)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal(first.ID))
		})
	})

	Describe("Update", func() {
		It("should record the colleague's answer", func() {
			a, err := service.Create(newDTO())
			Expect(err).ToNot(HaveOccurred())

			status := "acceptée"
			got, err := service.Update(a.ID, ask.UpdateDTO{Status: &status})
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Status).To(Equal("acceptée"))
		})

		It("should refuse to blank the colleague", func() {
			a, err := service.Create(newDTO())
			Expect(err).ToNot(HaveOccurred())

			blank := ""
			_, err = service.Update(a.ID, ask.UpdateDTO{ColleagueID: &blank})
			Expect(err).To(Equal(ask.ErrColleagueRequired))
		})

		It("should return not found for an unknown id", func() {
			status := "acceptée"
			_, err := service.Update(docid.New(), ask.UpdateDTO{Status: &status})
			Expect(err).To(Equal(ask.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should return not found when nothing was deleted", func() {
			Expect(service.Delete(docid.New())).To(Equal(ask.ErrNotFound))
		})
	})
})
