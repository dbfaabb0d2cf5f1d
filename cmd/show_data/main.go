// Dumps the cached pipeline tables for a quick look at what the sync
// service has pulled, without going through the API.
package main

import (
	"fmt"
	"os"

	"github.com/botivate-in/protrackgo/internal/models"
	"github.com/botivate-in/protrackgo/internal/pipeline"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// connect straight to the embedded instance the server runs
	dsn := "host=localhost user=postgres password=postgres dbname=protrack port=5433 sslmode=disable"
	if v := os.Getenv("PROTRACK_DSN"); v != "" {
		dsn = v
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Printf("❌ Failed to connect: %v\n", err)
		fmt.Println("\n💡 Try starting the server first:")
		fmt.Println("   go run ./cmd/api")
		os.Exit(1)
	}

	fmt.Println("📊 ProTrack Cache Report")
	fmt.Println("──────────────────────────────────────────────")

	var orderCount, cardCount, entryCount, crushCount, userCount int64
	db.Model(&models.ProductionOrder{}).Count(&orderCount)
	db.Model(&models.JobCard{}).Count(&cardCount)
	db.Model(&models.ActualEntry{}).Count(&entryCount)
	db.Model(&models.CrushingEntry{}).Count(&crushCount)
	db.Model(&models.SheetUser{}).Count(&userCount)

	fmt.Printf("Orders:           %d\n", orderCount)
	fmt.Printf("Job cards:        %d\n", cardCount)
	fmt.Printf("Actual entries:   %d\n", entryCount)
	fmt.Printf("Crushing entries: %d\n", crushCount)
	fmt.Printf("Sheet users:      %d\n", userCount)
	fmt.Println()

	var orders []models.ProductionOrder
	db.Order("serial").Find(&orders)
	fmt.Println("📋 ORDERS")
	for _, o := range orders {
		fmt.Printf("  %-8s %-24s target=%-8g made=%-8g pending=%-8g %s\n",
			o.Serial, o.Name, o.TargetQty, o.TotalMade, o.PendingQty, o.Status)
	}
	fmt.Println()

	var cards []models.JobCard
	db.Order("serial").Find(&cards)
	fmt.Println("🗂️ JOB CARDS")
	for _, c := range cards {
		open := " "
		if pipeline.JobCardOpen(c) {
			open = "open"
		}
		fmt.Printf("  %-9s order=%-8s %-18s plan=%-8g made=%-8g %-11s %s\n",
			c.Serial, c.OrderSerial, c.Supervisor, c.PlannedQty, c.ActualMade, c.Status, open)
	}
	fmt.Println()

	var entries []models.ActualEntry
	db.Order("serial").Find(&entries)
	fmt.Println("🏭 ACTUAL ENTRIES")
	for _, e := range entries {
		stage := "logged"
		switch {
		case pipeline.EntryCrushed(e):
			stage = "crushed"
		case pipeline.EntryAwaitingCrushing(e):
			stage = "awaiting crushing"
		case pipeline.EntryApprovalDone(e):
			stage = "approved"
		case pipeline.EntryAwaitingApproval(e):
			stage = "awaiting approval"
		}
		fmt.Printf("  %-7s card=%-9s qty=%-8g %s\n", e.Serial, e.JobCardSerial, e.QtyProduced, stage)
	}
}
