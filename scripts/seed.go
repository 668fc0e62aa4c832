package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/unify-edu/unify-backend/internal/adapters/database"
	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/postgres"
	"github.com/unify-edu/unify-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE universities RESTART IDENTITY CASCADE`); err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	repo := database.NewUniversityAdapter(pgClient)

	now := time.Now().UTC()
	universities := []*entities.University{
		{
			Name:                    "University of Toronto",
			Location:                "Toronto, ON",
			AccessibilityRating:     4.5,
			DisabilitySupportRating: 4.8,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Note-Taking Services",
				"Counseling Services",
				"Accessible Transportation",
				"Assistive Technology",
			},
		},
		{
			Name:                    "University of British Columbia",
			Location:                "Vancouver, BC",
			AccessibilityRating:     4.3,
			DisabilitySupportRating: 4.6,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Assistive Technology",
				"Accessible Housing",
				"Counseling Services",
			},
		},
		{
			Name:                    "McGill University",
			Location:                "Montreal, QC",
			AccessibilityRating:     4.2,
			DisabilitySupportRating: 4.4,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Note-Taking Services",
				"Priority Registration",
			},
		},
		{
			Name:                    "University of Waterloo",
			Location:                "Waterloo, ON",
			AccessibilityRating:     4.1,
			DisabilitySupportRating: 4.3,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Quiet Exam Rooms",
				"Assistive Technology",
			},
		},
		{
			Name:                    "Carleton University",
			Location:                "Ottawa, ON",
			AccessibilityRating:     4.6,
			DisabilitySupportRating: 4.5,
			AvailableAccommodations: []string{
				"Accessible Transportation",
				"Accessible Housing",
				"Note-Taking Services",
				"Priority Registration",
			},
		},
	}

	seeded := 0
	for _, u := range universities {
		if existing, err := repo.GetByName(ctx, u.Name); err == nil && existing != nil {
			log.Printf("Skipping %s (already seeded)", u.Name)
			continue
		}

		u.ID = uuid.NewString()
		u.IsActive = true
		u.CreatedAt = now
		u.UpdatedAt = now

		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("Failed to seed %s: %v", u.Name, err)
		}
		seeded++
		log.Printf("Seeded %s", u.Name)
	}

	log.Printf("Seeding complete: %d universities inserted", seeded)
}
