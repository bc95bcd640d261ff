package feed_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duvalivy/planrh/internal/feed"
	"github.com/duvalivy/planrh/internal/timefmt"
	"github.com/duvalivy/planrh/pkg/docid"
)

func TestFeed(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Feed Suite")
}

type mockFeedRepository struct {
	items map[string]*feed.Entry

	dueFromDate string
}

func newMockFeedRepository() *mockFeedRepository {
	return &mockFeedRepository{items: make(map[string]*feed.Entry)}
}

func (m *mockFeedRepository) Create(e *feed.Entry) error {
	if e.ID == "" {
		e.ID = docid.New()
	}
	cp := *e
	m.items[e.ID] = &cp
	return nil
}

func (m *mockFeedRepository) GetByID(id string) (*feed.Entry, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *mockFeedRepository) List() ([]feed.Entry, error) {
	out := make([]feed.Entry, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockFeedRepository) ListByUser(userID string) ([]feed.Entry, error) {
	var out []feed.Entry
	for _, e := range m.items {
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockFeedRepository) ListByService(serviceID string) ([]feed.Entry, error) {
	var out []feed.Entry
	for _, e := range m.items {
		if e.ServiceID != nil && *e.ServiceID == serviceID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockFeedRepository) ListDueFrom(date string) ([]feed.Entry, error) {
	m.dueFromDate = date
	var out []feed.Entry
	for _, e := range m.items {
		if e.DueDate != nil && *e.DueDate >= date {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockFeedRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	e, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	for col, v := range fields {
		switch col {
		case "type":
			e.Type = v.(string)
		case "severity":
			e.Severity = v.(string)
		case "status":
			e.Status = v.(string)
		case "title":
			e.Title = v.(string)
		case "message":
			e.Message = v.(string)
		case "due_date":
			s := v.(string)
			e.DueDate = &s
		}
	}
	return 1, nil
}

func (m *mockFeedRepository) UpdateStatusByUser(userID, status string) (int64, error) {
	var rows int64
	for _, e := range m.items {
		if e.UserID != nil && *e.UserID == userID && e.Status != status {
			e.Status = status
			rows++
		}
	}
	return rows, nil
}

func (m *mockFeedRepository) Delete(id string) (int64, error) {
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func newService(kind feed.Kind, repo *mockFeedRepository) *feed.Service {
	return feed.NewService(kind, repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var _ = Describe("Feed Service", func() {
	var repo *mockFeedRepository

	BeforeEach(func() {
		repo = newMockFeedRepository()
	})

	Describe("Create", func() {
		It("should default the status per collection", func() {
			alerts := newService(feed.Alerts, repo)
			e, err := alerts.Create(feed.CreateDTO{Type: "planning", Title: "Effectif insuffisant"})
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Status).To(Equal("new"))

			events := newService(feed.Events, newMockFeedRepository())
			ev, err := events.Create(feed.CreateDTO{Type: "reunion", Title: "Réunion de service"})
			Expect(err).ToNot(HaveOccurred())
			Expect(ev.Status).To(Equal("scheduled"))

			notifs := newService(feed.Notifications, newMockFeedRepository())
			n, err := notifs.Create(feed.CreateDTO{Type: "rappel", Title: "Planning à valider"})
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Status).To(Equal("unread"))
		})

		It("should validate the type against the collection's enum", func() {
			alerts := newService(feed.Alerts, repo)
			_, err := alerts.Create(feed.CreateDTO{Type: "reunion", Title: "x"})
			Expect(err).To(HaveOccurred())

			anomalies := newService(feed.Anomalies, repo)
			_, err = anomalies.Create(feed.CreateDTO{Type: "chevauchement", Title: "Chevauchement détecté"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should require a title", func() {
			alerts := newService(feed.Alerts, repo)
			_, err := alerts.Create(feed.CreateDTO{Type: "system", Title: "  "})
			Expect(err).To(HaveOccurred())
		})

		It("should validate the severity where the collection carries one", func() {
			alerts := newService(feed.Alerts, repo)
			_, err := alerts.Create(feed.CreateDTO{Type: "system", Title: "x", Severity: "fatal"})
			Expect(err).To(HaveOccurred())

			_, err = alerts.Create(feed.CreateDTO{Type: "system", Title: "x", Severity: feed.SeverityCritical})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject a severity on a collection without one", func() {
			events := newService(feed.Events, repo)
			_, err := events.Create(feed.CreateDTO{Type: "reunion", Title: "x", Severity: feed.SeverityInfo})
			Expect(err).To(HaveOccurred())
		})

		It("should keep the due date only for events", func() {
			due := "2026-09-15"

			events := newService(feed.Events, repo)
			ev, err := events.Create(feed.CreateDTO{Type: "formation", Title: "Formation gestes d'urgence", DueDate: &due})
			Expect(err).ToNot(HaveOccurred())
			Expect(ev.DueDate).ToNot(BeNil())

			alerts := newService(feed.Alerts, newMockFeedRepository())
			a, err := alerts.Create(feed.CreateDTO{Type: "system", Title: "x", DueDate: &due})
			Expect(err).ToNot(HaveOccurred())
			Expect(a.DueDate).To(BeNil())
		})

		It("should validate an explicit status", func() {
			notifs := newService(feed.Notifications, repo)
			_, err := notifs.Create(feed.CreateDTO{Type: "info", Title: "x", Status: "archived"})
			Expect(err).To(HaveOccurred())

			n, err := notifs.Create(feed.CreateDTO{Type: "info", Title: "x", Status: "read"})
			Expect(err).ToNot(HaveOccurred())
			Expect(n.Status).To(Equal("read"))
		})
	})

	Describe("Upcoming", func() {
		It("should query from today onward", func() {
			events := newService(feed.Events, repo)

			past := "2020-01-01"
			future := "2099-01-01"
			_, err := events.Create(feed.CreateDTO{Type: "reunion", Title: "Ancienne réunion", DueDate: &past})
			Expect(err).ToNot(HaveOccurred())
			_, err = events.Create(feed.CreateDTO{Type: "reunion", Title: "Prochaine réunion", DueDate: &future})
			Expect(err).ToNot(HaveOccurred())

			before := time.Now().Format(timefmt.DateLayout)
			items, err := events.Upcoming()
			after := time.Now().Format(timefmt.DateLayout)
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.dueFromDate).To(SatisfyAny(Equal(before), Equal(after)))
			Expect(items).To(HaveLen(1))
			Expect(items[0].Title).To(Equal("Prochaine réunion"))
		})
	})

	Describe("Update", func() {
		It("should validate the new status against the collection", func() {
			alerts := newService(feed.Alerts, repo)
			e, err := alerts.Create(feed.CreateDTO{Type: "system", Title: "x"})
			Expect(err).ToNot(HaveOccurred())

			bad := "done"
			_, err = alerts.Update(e.ID, feed.UpdateDTO{Status: &bad})
			Expect(err).To(HaveOccurred())

			good := "resolved"
			got, err := alerts.Update(e.ID, feed.UpdateDTO{Status: &good})
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Status).To(Equal("resolved"))
		})

		It("should drop a due date edit on a collection without one", func() {
			notifs := newService(feed.Notifications, repo)
			n, err := notifs.Create(feed.CreateDTO{Type: "info", Title: "x"})
			Expect(err).ToNot(HaveOccurred())

			due := "2026-09-15"
			got, err := notifs.Update(n.ID, feed.UpdateDTO{DueDate: &due})
			Expect(err).ToNot(HaveOccurred())
			Expect(got.DueDate).To(BeNil())
		})

		It("should return not found for an unknown id", func() {
			alerts := newService(feed.Alerts, repo)
			status := "resolved"
			_, err := alerts.Update(docid.New(), feed.UpdateDTO{Status: &status})
			Expect(err).To(Equal(feed.ErrNotFound))
		})
	})

	Describe("MarkAllForUser", func() {
		It("should flip every unread notification of the user to read", func() {
			notifs := newService(feed.Notifications, repo)

			uid := docid.New()
			other := docid.New()
			_, err := notifs.Create(feed.CreateDTO{Type: "info", Title: "Première", UserID: &uid})
			Expect(err).ToNot(HaveOccurred())
			_, err = notifs.Create(feed.CreateDTO{Type: "rappel", Title: "Seconde", UserID: &uid})
			Expect(err).ToNot(HaveOccurred())
			_, err = notifs.Create(feed.CreateDTO{Type: "info", Title: "Autre agent", UserID: &other})
			Expect(err).ToNot(HaveOccurred())

			count, err := notifs.MarkAllForUser(uid)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(2)))

			mine, err := notifs.ListByUser(uid)
			Expect(err).ToNot(HaveOccurred())
			for _, n := range mine {
				Expect(n.Status).To(Equal("read"))
			}

			theirs, err := notifs.ListByUser(other)
			Expect(err).ToNot(HaveOccurred())
			Expect(theirs[0].Status).To(Equal("unread"))
		})

		It("should count nothing on a second pass", func() {
			notifs := newService(feed.Notifications, repo)

			uid := docid.New()
			_, err := notifs.Create(feed.CreateDTO{Type: "info", Title: "x", UserID: &uid})
			Expect(err).ToNot(HaveOccurred())

			_, err = notifs.MarkAllForUser(uid)
			Expect(err).ToNot(HaveOccurred())

			count, err := notifs.MarkAllForUser(uid)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("Delete", func() {
		It("should return not found when nothing was deleted", func() {
			alerts := newService(feed.Alerts, repo)
			Expect(alerts.Delete(docid.New())).To(Equal(feed.ErrNotFound))
		})
	})
})
