package availability_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duvalivy/planrh/internal/availability"
	"github.com/duvalivy/planrh/pkg/docid"
)

func TestAvailability(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Availability Suite")
}

type mockAvailabilityRepository struct {
	items map[string]*availability.Availability

	createError  error
	getError     error
	overlapError error
}

func newMockAvailabilityRepository() *mockAvailabilityRepository {
	return &mockAvailabilityRepository{items: make(map[string]*availability.Availability)}
}

func (m *mockAvailabilityRepository) Create(av *availability.Availability) error {
	if m.createError != nil {
		return m.createError
	}
	if av.ID == "" {
		av.ID = docid.New()
	}
	cp := *av
	m.items[av.ID] = &cp
	return nil
}

func (m *mockAvailabilityRepository) GetByID(id string) (*availability.Availability, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	av, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *av
	return &cp, nil
}

func (m *mockAvailabilityRepository) List() ([]availability.Availability, error) {
	out := make([]availability.Availability, 0, len(m.items))
	for _, av := range m.items {
		out = append(out, *av)
	}
	return out, nil
}

func (m *mockAvailabilityRepository) ListByUser(userID string) ([]availability.Availability, error) {
	var out []availability.Availability
	for _, av := range m.items {
		if av.UserID == userID {
			out = append(out, *av)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepository) ListByDate(date string) ([]availability.Availability, error) {
	var out []availability.Availability
	for _, av := range m.items {
		if av.Date == date {
			out = append(out, *av)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepository) ListByStatus(status string) ([]availability.Availability, error) {
	var out []availability.Availability
	for _, av := range m.items {
		if av.Status == status {
			out = append(out, *av)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepository) FindOverlap(userID, date, start, end, excludeID string) (*availability.Availability, error) {
	if m.overlapError != nil {
		return nil, m.overlapError
	}
	for _, av := range m.items {
		if av.ID == excludeID || av.UserID != userID || av.Date != date {
			continue
		}
		if av.Overlaps(start, end) {
			cp := *av
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockAvailabilityRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	av, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	for col, v := range fields {
		switch col {
		case "date":
			av.Date = v.(string)
		case "start_time":
			av.StartTime = v.(string)
		case "end_time":
			av.EndTime = v.(string)
		case "status":
			av.Status = v.(string)
		case "commentaire":
			s := v.(string)
			av.Comment = &s
		}
	}
	return 1, nil
}

func (m *mockAvailabilityRepository) Delete(id string) (int64, error) {
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

type mockUserDirectory struct {
	known       map[string]bool
	names       map[string][2]string
	serviceIDs  map[string][]string
	existsError error
}

func newMockUserDirectory(ids ...string) *mockUserDirectory {
	m := &mockUserDirectory{
		known:      make(map[string]bool),
		names:      make(map[string][2]string),
		serviceIDs: make(map[string][]string),
	}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

func (m *mockUserDirectory) Exists(id string) (bool, error) {
	if m.existsError != nil {
		return false, m.existsError
	}
	return m.known[id], nil
}

func (m *mockUserDirectory) Lookup(id string) (string, string, error) {
	dec := m.names[id]
	return dec[0], dec[1], nil
}

func (m *mockUserDirectory) ListServiceUserIDs(serviceID string) ([]string, error) {
	return m.serviceIDs[serviceID], nil
}

var _ = Describe("Availability Service", func() {
	var (
		repo    *mockAvailabilityRepository
		users   *mockUserDirectory
		service *availability.Service
		userID  string
	)

	BeforeEach(func() {
		repo = newMockAvailabilityRepository()
		userID = docid.New()
		users = newMockUserDirectory(userID)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = availability.NewService(repo, users, logger)
	})

	newDTO := func(start, end string) availability.CreateDTO {
		return availability.CreateDTO{
			UserID:    userID,
			Date:      "2026-03-02",
			StartTime: start,
			EndTime:   end,
		}
	}

	Describe("Create", func() {
		It("should record a valid proposal as proposed", func() {
			av, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(av.ID).ToNot(BeEmpty())
			Expect(av.Status).To(Equal(availability.StatusProposed))
		})

		It("should force status to proposed even when the payload says otherwise", func() {
			// CreateDTO has no status field at all; the stored record must
			// still come out as proposed.
			av, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.items[av.ID].Status).To(Equal(availability.StatusProposed))
		})

		It("should reject a malformed date before anything else", func() {
			dto := newDTO("bad", "bad")
			dto.Date = "02/03/2026"
			_, err := service.Create(dto)
			Expect(err).To(Equal(availability.ErrBadDate))
		})

		It("should reject a malformed start time", func() {
			_, err := service.Create(newDTO("8h00", "12:00"))
			Expect(err).To(Equal(availability.ErrBadStartTime))
		})

		It("should reject a malformed end time", func() {
			_, err := service.Create(newDTO("08:00", "noon"))
			Expect(err).To(Equal(availability.ErrBadEndTime))
		})

		It("should reject an empty or inverted range", func() {
			_, err := service.Create(newDTO("12:00", "12:00"))
			Expect(err).To(Equal(availability.ErrBadRange))

			_, err = service.Create(newDTO("14:00", "12:00"))
			Expect(err).To(Equal(availability.ErrBadRange))
		})

		It("should reject an unknown user", func() {
			dto := newDTO("08:00", "12:00")
			dto.UserID = docid.New()
			_, err := service.Create(dto)
			Expect(err).To(Equal(availability.ErrUnknownUser))
		})

		It("should reject an overlapping proposal for the same user and day", func() {
			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(newDTO("10:00", "14:00"))
			Expect(err).To(Equal(availability.ErrSlotConflict))

			_, err = service.Create(newDTO("07:00", "08:30"))
			Expect(err).To(Equal(availability.ErrSlotConflict))

			_, err = service.Create(newDTO("09:00", "10:00"))
			Expect(err).To(Equal(availability.ErrSlotConflict))
		})

		It("should accept touching endpoints", func() {
			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(newDTO("12:00", "16:00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(newDTO("06:00", "08:00"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should allow the same window for a different user", func() {
			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())

			other := docid.New()
			users.known[other] = true
			dto := newDTO("08:00", "12:00")
			dto.UserID = other
			_, err = service.Create(dto)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should allow the same window on a different day", func() {
			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())

			dto := newDTO("08:00", "12:00")
			dto.Date = "2026-03-03"
			_, err = service.Create(dto)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should wrap repository failures", func() {
			repo.overlapError = errors.New("db down")
			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).To(HaveOccurred())
			Expect(err).ToNot(Equal(availability.ErrSlotConflict))
		})
	})

	Describe("GetByID", func() {
		It("should return a not found error for an unknown id", func() {
			_, err := service.GetByID(docid.New())
			Expect(err).To(Equal(availability.ErrNotFound))
		})
	})

	Describe("ListByDate", func() {
		It("should validate the date", func() {
			_, err := service.ListByDate("tomorrow")
			Expect(err).To(Equal(availability.ErrBadDate))
		})
	})

	Describe("ListByStatus", func() {
		It("should validate the status", func() {
			_, err := service.ListByStatus("pending")
			Expect(err).To(Equal(availability.ErrBadStatus))
		})
	})

	Describe("Team", func() {
		var otherID string

		BeforeEach(func() {
			otherID = docid.New()
			users.known[otherID] = true
			users.names[userID] = [2]string{"Chloé Dubois", "INF123456ABCD"}
			users.names[otherID] = [2]string{"Bruno Lefevre", "CAD654321DCBA"}

			_, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
			dto := newDTO("08:00", "12:00")
			dto.UserID = otherID
			_, err = service.Create(dto)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should decorate proposals with user name and matricule", func() {
			items, err := service.Team("", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
			for _, it := range items {
				Expect(it.UserName).ToNot(BeEmpty())
				Expect(it.UserMatricule).ToNot(BeEmpty())
			}
		})

		It("should narrow to one care service's members", func() {
			serviceID := docid.New()
			users.serviceIDs[serviceID] = []string{userID}

			items, err := service.Team(serviceID, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].UserID).To(Equal(userID))
		})

		It("should return an empty list for a service with no members", func() {
			items, err := service.Team(docid.New(), "")
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(BeEmpty())
		})

		It("should filter by status", func() {
			items, err := service.Team("", availability.StatusValidated)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(BeEmpty())

			items, err = service.Team("", availability.StatusProposed)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
		})

		It("should reject an invalid status filter", func() {
			_, err := service.Team("", "archived")
			Expect(err).To(Equal(availability.ErrBadStatus))
		})

		It("should tolerate users deleted since their proposal", func() {
			delete(users.names, otherID)
			items, err := service.Team("", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		var existing *availability.Availability

		BeforeEach(func() {
			var err error
			existing, err = service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
		})

		strPtr := func(s string) *string { return &s }

		It("should apply a partial edit", func() {
			av, err := service.Update(existing.ID, availability.UpdateDTO{EndTime: strPtr("13:00")})
			Expect(err).ToNot(HaveOccurred())
			Expect(av.StartTime).To(Equal("08:00"))
			Expect(av.EndTime).To(Equal("13:00"))
		})

		It("should not flag the record as overlapping itself", func() {
			av, err := service.Update(existing.ID, availability.UpdateDTO{
				StartTime: strPtr("09:00"),
				EndTime:   strPtr("11:00"),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(av.StartTime).To(Equal("09:00"))
		})

		It("should re-run the overlap check against the merged interval", func() {
			_, err := service.Create(newDTO("14:00", "16:00"))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Update(existing.ID, availability.UpdateDTO{EndTime: strPtr("15:00")})
			Expect(err).To(Equal(availability.ErrSlotConflict))
		})

		It("should reject a merged interval that inverts", func() {
			_, err := service.Update(existing.ID, availability.UpdateDTO{StartTime: strPtr("13:00")})
			Expect(err).To(Equal(availability.ErrBadRange))
		})

		It("should reject an invalid status value", func() {
			_, err := service.Update(existing.ID, availability.UpdateDTO{Status: strPtr("archived")})
			Expect(err).To(Equal(availability.ErrBadStatus))
		})

		It("should return not found for an unknown id", func() {
			_, err := service.Update(docid.New(), availability.UpdateDTO{EndTime: strPtr("13:00")})
			Expect(err).To(Equal(availability.ErrNotFound))
		})

		It("should return the unchanged record when nothing is set", func() {
			av, err := service.Update(existing.ID, availability.UpdateDTO{})
			Expect(err).ToNot(HaveOccurred())
			Expect(av.EndTime).To(Equal("12:00"))
		})
	})

	Describe("Decide", func() {
		var existing *availability.Availability

		BeforeEach(func() {
			var err error
			existing, err = service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should validate the proposal", func() {
			av, err := service.Decide(existing.ID, availability.DecideDTO{Status: availability.StatusValidated})
			Expect(err).ToNot(HaveOccurred())
			Expect(av.Status).To(Equal(availability.StatusValidated))
			Expect(repo.items[existing.ID].Status).To(Equal(availability.StatusValidated))
		})

		It("should reject the proposal with a comment", func() {
			comment := "Effectif déjà complet"
			av, err := service.Decide(existing.ID, availability.DecideDTO{
				Status:  availability.StatusRejected,
				Comment: &comment,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(av.Status).To(Equal(availability.StatusRejected))
			Expect(*repo.items[existing.ID].Comment).To(Equal(comment))
		})

		It("should refuse to set proposed through the decision endpoint", func() {
			_, err := service.Decide(existing.ID, availability.DecideDTO{Status: availability.StatusProposed})
			Expect(err).To(Equal(availability.ErrBadDecision))
		})

		It("should report the status error even for an unknown id", func() {
			_, err := service.Decide(docid.New(), availability.DecideDTO{Status: "whatever"})
			Expect(err).To(Equal(availability.ErrBadDecision))
		})

		It("should return not found for an unknown id with a valid status", func() {
			_, err := service.Decide(docid.New(), availability.DecideDTO{Status: availability.StatusRejected})
			Expect(err).To(Equal(availability.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should delete an existing proposal", func() {
			av, err := service.Create(newDTO("08:00", "12:00"))
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Delete(av.ID)).To(Succeed())
			Expect(repo.items).To(BeEmpty())
		})

		It("should return not found when nothing was deleted", func() {
			Expect(service.Delete(docid.New())).To(Equal(availability.ErrNotFound))
		})
	})
})
