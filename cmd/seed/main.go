package main

import (
	"context"
	"log"
	"os"

	"bungalowpark/internal/database"
	"bungalowpark/internal/domain"
	"bungalowpark/internal/modules/settings"
	"bungalowpark/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "bungalowpark.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM activity_logs")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM extra_services")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM bungalows")
	db.Exec("DELETE FROM email_templates")
	db.Exec("DELETE FROM terms_documents")
	db.Exec("DELETE FROM settings")

	ctx := context.Background()

	// ================== BUNGALOWS ==================
	log.Println("Creating bungalows...")
	bungalows := []domain.Bungalow{
		{Name: "Seaside 1", Description: "Two-bedroom bungalow with sea view", Capacity: 4, PricePerNight: 120, Status: domain.BungalowActive},
		{Name: "Seaside 2", Description: "Two-bedroom bungalow with sea view", Capacity: 4, PricePerNight: 120, Status: domain.BungalowActive},
		{Name: "Garden Suite", Description: "Family bungalow by the garden", Capacity: 6, PricePerNight: 160, Status: domain.BungalowActive},
		{Name: "Forest Cabin", Description: "Compact cabin at the tree line", Capacity: 2, PricePerNight: 85, Status: domain.BungalowActive},
		{Name: "Lakeside Lodge", Description: "Large lodge, under renovation", Capacity: 8, PricePerNight: 210, Status: domain.BungalowMaintenance},
	}
	for i := range bungalows {
		db.Create(&bungalows[i])
	}

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")
	customers := []domain.Customer{
		{FullName: "Jan de Vries", Email: "jan@example.com", Phone: "+31 6 1234 5601", Status: domain.CustomerActive},
		{FullName: "Marie Dubois", Email: "marie@example.com", Phone: "+33 6 1234 5602", Status: domain.CustomerActive},
		{FullName: "Thomas Weber", Email: "thomas@example.com", Phone: "+49 151 1234 5603", Status: domain.CustomerActive},
	}
	for i := range customers {
		db.Create(&customers[i])
	}

	// ================== EXTRA SERVICES ==================
	log.Println("Creating extra services...")
	services := []domain.ExtraService{
		{Name: "Breakfast", Description: "Daily breakfast basket", Price: 12.5, Pricing: domain.PricingPerPerson, Active: true},
		{Name: "Bike rental", Description: "Per night, per stay", Price: 8, Pricing: domain.PricingPerNight, Active: true},
		{Name: "Late checkout", Price: 25, Pricing: domain.PricingFixed, Active: true},
		{Name: "Welcome drink", Pricing: domain.PricingFree, Active: true},
	}
	for i := range services {
		db.Create(&services[i])
	}

	// ================== SETTINGS ==================
	log.Println("Creating settings...")
	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.EnsureDefaults(ctx, settings.Defaults(24)); err != nil {
		log.Fatal("settings seed failed:", err)
	}

	// ================== EMAIL TEMPLATES ==================
	log.Println("Creating email templates...")
	templates := []domain.EmailTemplate{
		{Slug: "reservation-created", Name: "Reservation created", Subject: "Your reservation", Body: "Thank you for your reservation.", Active: true},
		{Slug: "reservation-confirmed", Name: "Reservation confirmed", Subject: "Reservation confirmed", Body: "Your reservation is confirmed.", Active: true},
		{Slug: "reservation-cancelled", Name: "Reservation cancelled", Subject: "Reservation cancelled", Body: "Your reservation has been cancelled.", Active: true},
	}
	for i := range templates {
		db.Create(&templates[i])
	}

	// ================== TERMS ==================
	log.Println("Creating terms document...")
	termsRepo := repository.NewTermsRepository(db)
	if _, err := termsRepo.Save(ctx, "Rental terms", "Check-in from 15:00, check-out before 11:00.", "seed"); err != nil {
		log.Fatal("terms seed failed:", err)
	}

	log.Println("Seed complete.")
}
