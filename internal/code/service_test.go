package code_test

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/duvalivy/planrh/internal/code"
	"github.com/duvalivy/planrh/internal/code/postgres"
	"github.com/duvalivy/planrh/pkg/docid"
)

func TestCode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Code Suite")
}

// workbook builds an in-memory xlsx with a header row and data rows.
func workbook(rows [][]string) io.Reader {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			Expect(err).ToNot(HaveOccurred())
			Expect(f.SetCellValue(sheet, name, cell)).To(Succeed())
		}
	}
	var buf bytes.Buffer
	Expect(f.Write(&buf)).To(Succeed())
	return &buf
}

var _ = Describe("Code Service", func() {
	var service *code.Service

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&code.Code{})).To(Succeed())
		service = code.NewService(
			postgres.NewCodeRepository(db),
			slog.New(slog.NewTextHandler(io.Discard, nil)),
		)
	})

	Describe("Create", func() {
		It("should issue a CODE matricule", func() {
			c, err := service.Create(code.CreateDTO{Name: "Jour", ShortName: "J"})
			Expect(err).ToNot(HaveOccurred())
			Expect(c.Matricule).To(MatchRegexp(`^CODE[0-9]{5}[A-Z]$`))
		})

		It("should require a name", func() {
			_, err := service.Create(code.CreateDTO{Name: " "})
			Expect(err).To(Equal(code.ErrNameRequired))
		})
	})

	Describe("Upload", func() {
		It("should insert valid rows and report per-row failures", func() {
			report, err := service.Upload(workbook([][]string{
				{"name", "short_name", "grouping", "indicator"},
				{"Jour", "J", "poste", "travail"},
				{"", "X", "poste", "travail"},
				{"Nuit", "N", "poste", "travail"},
			}))
			Expect(err).ToNot(HaveOccurred())
			Expect(report.BatchID).ToNot(BeEmpty())
			Expect(report.Inserted).To(Equal(2))
			Expect(report.Errors).To(HaveLen(1))
			Expect(report.Errors[0].Row).To(Equal(3))

			items, err := service.List()
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
		})

		It("should match header columns case-insensitively", func() {
			report, err := service.Upload(workbook([][]string{
				{"Name", "Short_Name"},
				{"Repos", "R"},
			}))
			Expect(err).ToNot(HaveOccurred())
			Expect(report.Inserted).To(Equal(1))
		})

		It("should reject a workbook without data rows", func() {
			_, err := service.Upload(workbook([][]string{{"name"}}))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unreadable file", func() {
			_, err := service.Upload(bytes.NewBufferString("not a workbook"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should apply a partial edit", func() {
			c, err := service.Create(code.CreateDTO{Name: "Jour"})
			Expect(err).ToNot(HaveOccurred())

			short := "J8"
			Expect(service.Update(c.ID, code.UpdateDTO{ShortName: &short})).To(Succeed())
			got, err := service.GetByID(c.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ShortName).To(Equal("J8"))
		})

		It("should return not found for an unknown id", func() {
			short := "J8"
			Expect(service.Update(docid.New(), code.UpdateDTO{ShortName: &short})).
				To(Equal(code.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should return not found when nothing was deleted", func() {
			Expect(service.Delete(docid.New())).To(Equal(code.ErrNotFound))
		})
	})
})
