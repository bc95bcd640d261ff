package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/organization"
	organizationstore "github.com/duvalivy/planrh/internal/organization/postgres"
	"github.com/duvalivy/planrh/internal/user"
	userstore "github.com/duvalivy/planrh/internal/user/postgres"
	"github.com/duvalivy/planrh/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(os.Getenv("APP_ENV"))
		lg := logger.L()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"asks", "plannings", "availabilities", "absences", "contracts", "users", "poles", "specialities", "services", "codes"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			lg.Info("existing data cleared")
		}

		userService := user.NewService(userstore.NewUserRepository(gormDB), cfg.Security.BCryptCost, lg)
		orgManager := organization.NewManager(organizationstore.NewOrganizationRepository(gormDB), lg)

		svc, err := orgManager.CreateService(organization.ServiceDTO{Name: "Cardiologie"})
		if err != nil && !errors.Is(err, organization.ErrServiceNameTaken) {
			log.Fatalf("failed to seed service: %v", err)
		}

		seedUsers := []user.RegisterDTO{
			{FirstName: "Alice", LastName: "Martin", Email: "alice.martin@hopital.fr", Password: "password", Role: user.RoleAdmin},
			{FirstName: "Bruno", LastName: "Lefevre", Email: "bruno.lefevre@hopital.fr", Password: "password", Role: user.RoleCadre},
			{FirstName: "Chloé", LastName: "Dubois", Email: "chloe.dubois@hopital.fr", Password: "password", Role: user.RoleNurse},
		}
		for _, dto := range seedUsers {
			u, err := userService.Register(dto)
			if err != nil {
				if errors.Is(err, user.ErrEmailTaken) {
					lg.Info("seed user already exists", "email", dto.Email)
					continue
				}
				log.Fatalf("failed to seed user %s: %v", dto.Email, err)
			}
			if svc != nil && dto.Role == user.RoleNurse {
				if err := userService.AssignService(u.ID, user.AssignServiceDTO{ServiceID: svc.ID}); err != nil {
					log.Fatalf("failed to assign service: %v", err)
				}
			}
			lg.Info("seed user created", "email", dto.Email, "matricule", u.Matricule)
		}
	},
}
