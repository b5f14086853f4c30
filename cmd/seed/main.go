package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"tutormatch/internal/database"
	"tutormatch/internal/domain"
	"tutormatch/internal/repository"
)

// Dev-only fixture data: a handful of students and tutors around London
// postcodes so search, booking and review flows can be exercised locally.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tutormatch.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM booking_messages")
	db.Exec("DELETE FROM booking_requests")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM tutor_profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	tutors := repository.NewTutorRepository(db)

	log.Println("Creating students...")
	studentEmails := []string{"amira@example.com", "ben@example.com", "chloe@example.com"}
	for i, email := range studentEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
		student := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleStudent,
			Name:         fmt.Sprintf("Student %d", i+1),
		}
		if err := users.Create(ctx, &student); err != nil {
			log.Fatal("seed student failed:", err)
		}
	}

	log.Println("Creating tutors...")
	fixtures := []struct {
		email    string
		name     string
		headline string
		category string
		subjects []string
		postcode string
		lat, lon float64
		price    float64
		mode     domain.TeachingMode
		radius   float64
	}{
		{"dan.maths@example.com", "Dan Okafor", "GCSE and A-level Maths", "academic", []string{"maths", "further maths"}, "SW1A 1AA", 51.501009, -0.141588, 45, domain.ModeBoth, 8},
		{"elena.piano@example.com", "Elena Petrova", "Classical piano, all levels", "music", []string{"piano", "music theory"}, "NW1 6XE", 51.538621, -0.163342, 55, domain.ModeInPerson, 5},
		{"femi.physics@example.com", "Femi Adeyemi", "Physics made intuitive", "academic", []string{"physics", "maths"}, "E1 6AN", 51.520255, -0.075529, 40, domain.ModeOnline, 0},
		{"grace.spanish@example.com", "Grace Lin", "Conversational Spanish", "languages", []string{"spanish"}, "SE1 7PB", 51.501604, -0.115713, 35, domain.ModeBoth, 10},
	}

	for _, f := range fixtures {
		hash, _ := bcrypt.GenerateFromPassword([]byte("tutor123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:        f.email,
			PasswordHash: string(hash),
			Role:         domain.RoleTutor,
			Name:         f.name,
		}
		if err := users.Create(ctx, &u); err != nil {
			log.Fatal("seed tutor user failed:", err)
		}

		p := domain.TutorProfile{
			UserID:            u.ID,
			Headline:          f.headline,
			Category:          f.category,
			Subjects:          f.subjects,
			Postcode:          f.postcode,
			Latitude:          f.lat,
			Longitude:         f.lon,
			PricePerHour:      f.price,
			TeachingMode:      f.mode,
			TravelRadiusMiles: f.radius,
			IsActive:          true,
		}
		if err := tutors.Create(ctx, &p); err != nil {
			log.Fatal("seed tutor profile failed:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("Students: amira@example.com / student123 (and ben, chloe)")
	log.Println("Tutors:   dan.maths@example.com / tutor123 (and elena, femi, grace)")
}
