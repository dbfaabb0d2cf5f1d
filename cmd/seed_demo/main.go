// Seeds the local cache with a small demo pipeline so the dashboard
// has something to show without a live sheet gateway. Run with
// SHEETS_SYNC_DISABLED=true or the next sync pass will prune the
// seeded rows.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/botivate-in/protrackgo/internal/aggregate"
	"github.com/botivate-in/protrackgo/internal/config"
	"github.com/botivate-in/protrackgo/internal/database"
	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	"github.com/botivate-in/protrackgo/internal/utils"
)

func main() {
	fmt.Println("🌱 ProTrack Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.UserAuth{},
		&models.SheetUser{},
		&models.ProductionOrder{},
		&models.JobCard{},
		&models.ActualEntry{},
		&models.CrushingEntry{},
		&models.SessionState{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	now := time.Now()
	stamp := pipeline.Stamp(now)
	date := now.Format("02/01/2006")

	// admin account for the API
	hash, err := utils.HashPassword("admin123")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	admin := models.UserAuth{Username: "admin", Password: hash, Name: "Demo Admin", Role: "admin"}
	if err := db.Where("username = ?", "admin").FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}
	fmt.Println("👤 Seeded admin account (admin / admin123)")

	orders := []models.ProductionOrder{
		{Timestamp: stamp, Serial: "SF-100", Name: "20mm Aggregate", TargetQty: 500, Notes: "demo", PlannedMarker: stamp, RowIndex: 7},
		{Timestamp: stamp, Serial: "SF-101", Name: "10mm Aggregate", TargetQty: 250, PlannedMarker: stamp, RowIndex: 8},
	}
	cards := []models.JobCard{
		{Timestamp: stamp, Serial: "SJC-381", OrderSerial: "SF-100", Supervisor: "Rahul Kumar", ProductName: "20mm Aggregate", PlannedQty: 300, ProductionDate: date, PlannedMarker: stamp, RowIndex: 5},
		{Timestamp: stamp, Serial: "SJC-382", OrderSerial: "SF-100", Supervisor: "Amit Singh", ProductName: "20mm Aggregate", PlannedQty: 200, ProductionDate: date, PlannedMarker: stamp, RowIndex: 6},
	}
	entries := []models.ActualEntry{
		{
			Timestamp: stamp, Serial: "SA-001", JobCardSerial: "SJC-381", OrderSerial: "SF-100",
			Supervisor: "Rahul Kumar", ProductionDate: date, ProductName: "20mm Aggregate",
			QtyProduced: 120, Narration: models.NarrationNormal,
			StartReading: 1200, EndReading: 1260, MachineHours: 60, MachineRunning: true,
			Stage1PlannedAt: stamp, RowIndex: 5,
		},
	}
	entries[0].SetMaterials([]models.RawMaterial{
		{Name: "Raw Stone", Qty: 150},
		{Name: "Fuel", Qty: 20},
	})

	aggregate.Recompute(orders, cards, entries)

	for _, o := range orders {
		if err := db.Where("serial = ?", o.Serial).FirstOrCreate(&o).Error; err != nil {
			log.Fatalf("❌ Failed to seed order %s: %v", o.Serial, err)
		}
	}
	for _, c := range cards {
		if err := db.Where("serial = ?", c.Serial).FirstOrCreate(&c).Error; err != nil {
			log.Fatalf("❌ Failed to seed job card %s: %v", c.Serial, err)
		}
	}
	for _, e := range entries {
		if err := db.Where("serial = ?", e.Serial).FirstOrCreate(&e).Error; err != nil {
			log.Fatalf("❌ Failed to seed entry %s: %v", e.Serial, err)
		}
	}

	fmt.Println("✅ Seeded 2 orders, 2 job cards, 1 actual entry")
	fmt.Println("🏁 Done")
}
