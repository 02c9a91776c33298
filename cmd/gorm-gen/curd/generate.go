// Generates typed query code for every inventory table.
package main

import (
	"fmt"
	"os"

	"dcim/dao/model"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
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
	g := gen.NewGenerator(gen.Config{
		OutPath: "./dao/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	g.UseDB(ConnectPostgres())

	g.ApplyBasic(
		model.User{},
		model.ChangeLog{},
		model.Location{},
		model.Building{},
		model.Wing{},
		model.Floor{},
		model.Datacenter{},
		model.Rack{},
		model.Device{},
		model.Make{},
		model.DeviceType{},
		model.Model{},
		model.AssetOwner{},
		model.ApplicationMapped{},
	)

	g.Execute()
}
