package availability_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/availability"
	"github.com/duvalivy/planrh/pkg/docid"
)

var _ = Describe("Availability Handler", func() {
	var (
		handler *availability.Handler
		repo    *mockAvailabilityRepository
		users   *mockUserDirectory
		userID  string
	)

	BeforeEach(func() {
		repo = newMockAvailabilityRepository()
		userID = docid.New()
		users = newMockUserDirectory(userID)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler = availability.NewHandler(availability.NewService(repo, users, logger))
	})

	seed := func() {
		_, err := availability.NewService(repo, users, slog.New(slog.NewTextHandler(io.Discard, nil))).
			Create(availability.CreateDTO{
				UserID:    userID,
				Date:      "2026-03-02",
				StartTime: "08:00",
				EndTime:   "12:00",
			})
		Expect(err).ToNot(HaveOccurred())
	}

	Describe("Mine", func() {
		It("should accept the user_id query parameter when no token identity is present", func() {
			seed()

			req := httptest.NewRequest(http.MethodGet, "/availabilities/me?user_id="+userID, nil)
			rec := httptest.NewRecorder()
			handler.Mine(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Data  []availability.Availability `json:"data"`
				Count int                         `json:"count"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Count).To(Equal(1))
			Expect(body.Data[0].UserID).To(Equal(userID))
		})

		It("should prefer the token identity over the query parameter", func() {
			seed()

			req := httptest.NewRequest(http.MethodGet, "/availabilities/me?user_id=somebody-else", nil)
			req = req.WithContext(internal.ContextWithUserID(req.Context(), userID))
			rec := httptest.NewRecorder()
			handler.Mine(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Count int `json:"count"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Count).To(Equal(1))
		})

		It("should reject a request with neither identity source", func() {
			req := httptest.NewRequest(http.MethodGet, "/availabilities/me", nil)
			rec := httptest.NewRecorder()
			handler.Mine(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			var body map[string]string
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveKey("detail"))
		})
	})
})
