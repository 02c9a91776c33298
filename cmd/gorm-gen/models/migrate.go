// Migration script for the inventory schema.
package main

import (
	"fmt"
	"os"

	"dcim/dao/model"

	"github.com/go-gormigrate/gormigrate/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectPostgres() *gorm.DB {
	dsn := os.Getenv("DCIM_DSN")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=dcim port=5432 sslmode=disable TimeZone=UTC"
	}
	db, err := gorm.Open(postgres.Open(dsn))
	if err != nil {
		panic(fmt.Errorf("connect to postgres: %w", err))
	}
	return db
}

func main() {
	db := ConnectPostgres()

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// track available units per rack instead of deriving on read
			ID: "2026031101",
			Migrate: func(tx *gorm.DB) error {
				type Rack struct {
					SpaceAvailable *int `gorm:"comment:remaining rack units"`
				}
				return tx.Migrator().AddColumn(&Rack{}, "SpaceAvailable")
			},
			Rollback: func(tx *gorm.DB) error {
				type Rack struct {
					SpaceAvailable *int
				}
				return tx.Migrator().DropColumn(&Rack{}, "SpaceAvailable")
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		err := tx.AutoMigrate(
			&model.User{},
			&model.ChangeLog{},
			&model.Location{},
			&model.Building{},
			&model.Wing{},
			&model.Floor{},
			&model.Datacenter{},
			&model.Rack{},
			&model.Device{},
			&model.Make{},
			&model.DeviceType{},
			&model.Model{},
			&model.AssetOwner{},
			&model.ApplicationMapped{},
		)
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		password := string(hash)
		admin := model.User{
			Name:     "admin",
			Password: &password,
			Role:     model.RoleAdmin,
		}
		return tx.Create(&admin).Error
	})

	if err := m.Migrate(); err != nil {
		panic(fmt.Errorf("could not migrate: %w", err))
	}
}
