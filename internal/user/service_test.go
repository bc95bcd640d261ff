package user_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/user"
	"github.com/duvalivy/planrh/pkg/docid"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockUserRepository struct {
	items map[string]*user.User

	createError error
	getError    error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{items: make(map[string]*user.User)}
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	if u.ID == "" {
		u.ID = docid.New()
	}
	cp := *u
	m.items[u.ID] = &cp
	return nil
}

func (m *mockUserRepository) GetByID(id string) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) List() ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.items))
	for _, u := range m.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockUserRepository) ListByRole(role string) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.items {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockUserRepository) ListByService(serviceID string) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.items {
		if u.ServiceID != nil && *u.ServiceID == serviceID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockUserRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	u, ok := m.items[id]
	if !ok {
		return 0, nil
	}
	for col, v := range fields {
		switch col {
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "email":
			u.Email = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "service_id":
			s := v.(string)
			u.ServiceID = &s
		}
	}
	return 1, nil
}

func (m *mockUserRepository) Delete(id string) (int64, error) {
	if _, ok := m.items[id]; !ok {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *mockUserRepository) MatriculeExists(candidate string) (bool, error) {
	for _, u := range m.items {
		if u.Matricule == candidate {
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = user.NewService(repo, bcrypt.MinCost, logger)
	})

	newDTO := func() user.RegisterDTO {
		return user.RegisterDTO{
			FirstName:   "Chloé",
			LastName:    "Dubois",
			Email:       "chloe.dubois@example.org",
			PhoneNumber: "0612345678",
			Password:    "s3curepass",
			Role:        user.RoleNurse,
		}
	}

	Describe("Register", func() {
		It("should create the user with a role-prefixed matricule", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).ToNot(BeEmpty())
			Expect(u.Matricule).To(MatchRegexp(`^INF[0-9]{6}[A-Z]{4}$`))
		})

		It("should hash the password with bcrypt", func() {
			dto := newDTO()
			u, err := service.Register(dto)
			Expect(err).ToNot(HaveOccurred())
			Expect(u.PasswordHash).ToNot(Equal(dto.Password))
			Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password))).To(Succeed())
		})

		It("should reject a duplicate email via the pre-check", func() {
			_, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Register(newDTO())
			Expect(err).To(Equal(user.ErrEmailTaken))
		})

		It("should reject a duplicate reported by the unique index", func() {
			repo.createError = gorm.ErrDuplicatedKey
			_, err := service.Register(newDTO())
			Expect(err).To(Equal(user.ErrEmailTaken))
		})

		It("should reject a malformed email", func() {
			dto := newDTO()
			dto.Email = "not-an-email"
			_, err := service.Register(dto)
			Expect(err).To(Equal(user.ErrInvalidEmail))
		})

		It("should require the name fields", func() {
			dto := newDTO()
			dto.FirstName = " "
			_, err := service.Register(dto)
			Expect(err).To(HaveOccurred())
		})

		It("should require a password of at least 6 characters", func() {
			dto := newDTO()
			dto.Password = "abc"
			_, err := service.Register(dto)
			Expect(err).To(HaveOccurred())
		})

		It("should wrap other insert failures", func() {
			repo.createError = errors.New("db down")
			_, err := service.Register(newDTO())
			Expect(err).To(HaveOccurred())
			Expect(err).ToNot(Equal(user.ErrEmailTaken))
		})
	})

	Describe("ListNurses", func() {
		It("should report when no nurse exists", func() {
			_, err := service.ListNurses()
			Expect(err).To(Equal(user.ErrNoNursesFound))
		})

		It("should return only nurses", func() {
			_, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			cadre := newDTO()
			cadre.Email = "bruno.lefevre@example.org"
			cadre.Role = user.RoleCadre
			_, err = service.Register(cadre)
			Expect(err).ToNot(HaveOccurred())

			nurses, err := service.ListNurses()
			Expect(err).ToNot(HaveOccurred())
			Expect(nurses).To(HaveLen(1))
			Expect(nurses[0].Role).To(Equal(user.RoleNurse))
		})
	})

	Describe("Update", func() {
		It("should apply a partial merge", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			name := "Camille"
			Expect(service.Update(u.ID, user.UpdateDTO{FirstName: &name})).To(Succeed())
			got, err := service.GetByID(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.FirstName).To(Equal("Camille"))
			Expect(got.LastName).To(Equal("Dubois"))
		})

		It("should validate a new email", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			bad := "nope"
			Expect(service.Update(u.ID, user.UpdateDTO{Email: &bad})).To(Equal(user.ErrInvalidEmail))
		})

		It("should return not found for an unknown id", func() {
			name := "Camille"
			Expect(service.Update(docid.New(), user.UpdateDTO{FirstName: &name})).To(Equal(user.ErrNotFound))
		})
	})

	Describe("ChangePassword", func() {
		It("should store a new hash", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.ChangePassword(u.ID, user.ChangePasswordDTO{NewPassword: "newsecret"})).To(Succeed())
			got, err := service.GetByID(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newsecret"))).To(Succeed())
		})

		It("should enforce the minimum length", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(service.ChangePassword(u.ID, user.ChangePasswordDTO{NewPassword: "abc"})).To(HaveOccurred())
		})
	})

	Describe("AssignService", func() {
		It("should set the user's care service", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			serviceID := docid.New()
			Expect(service.AssignService(u.ID, user.AssignServiceDTO{ServiceID: serviceID})).To(Succeed())
			got, err := service.GetByID(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ServiceID).ToNot(BeNil())
			Expect(*got.ServiceID).To(Equal(serviceID))
		})

		It("should require a service id", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(service.AssignService(u.ID, user.AssignServiceDTO{})).To(HaveOccurred())
		})
	})

	Describe("Directory methods", func() {
		It("should report existence", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			ok, err := service.Exists(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = service.Exists(docid.New())
			Expect(err).ToNot(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should return display attributes on lookup", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			name, mat, err := service.Lookup(u.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(name).To(Equal("Chloé Dubois"))
			Expect(mat).To(Equal(u.Matricule))
		})

		It("should return empty attributes for an unknown id", func() {
			name, mat, err := service.Lookup(docid.New())
			Expect(err).ToNot(HaveOccurred())
			Expect(name).To(BeEmpty())
			Expect(mat).To(BeEmpty())
		})

		It("should list a care service's member ids", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())

			serviceID := docid.New()
			Expect(service.AssignService(u.ID, user.AssignServiceDTO{ServiceID: serviceID})).To(Succeed())

			ids, err := service.ListServiceUserIDs(serviceID)
			Expect(err).ToNot(HaveOccurred())
			Expect(ids).To(ConsistOf(u.ID))
		})
	})

	Describe("Delete", func() {
		It("should remove the user", func() {
			u, err := service.Register(newDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(service.Delete(u.ID)).To(Succeed())
			_, err = service.GetByID(u.ID)
			Expect(err).To(Equal(user.ErrNotFound))
		})

		It("should return not found when nothing was deleted", func() {
			Expect(service.Delete(docid.New())).To(Equal(user.ErrNotFound))
		})
	})
})
