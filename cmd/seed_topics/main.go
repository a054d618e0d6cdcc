// Command seed_topics loads the initial topic catalog. Running it again is a
// no-op for topics that already exist.
package main

import (
	"context"
	"log"
	"time"

	"studybridge/internal/config"
	"studybridge/internal/database"
	"studybridge/internal/domain"
	"studybridge/internal/repository"
	"studybridge/internal/util"
)

var seedTopics = []struct {
	name        string
	description string
}{
	{"campus-life", "Day-to-day life on campus: housing, dining, clubs and events"},
	{"academic-support", "Tutoring, writing centers, office hours and study resources"},
	{"university-orientation", "Getting started at your university: enrollment, IT setup, key offices"},
	{"visa-basics", "Student visa rules, work limits and status maintenance"},
	{"banking-and-finance", "Opening a bank account, budgeting and paying tuition"},
	{"health-insurance", "Health coverage requirements and using campus health services"},
	{"housing", "Finding and keeping off-campus housing, leases and tenant rights"},
	{"cultural-adjustment", "Culture shock, making friends and communication norms"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	topicRepo := repository.NewTopicDatabaseAdapter(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, seed := range seedTopics {
		topic := &domain.Topic{
			ID:          util.NewULID(),
			Name:        seed.name,
			Description: seed.description,
			CreatedAt:   time.Now(),
		}
		if err := topicRepo.SaveTopic(ctx, topic); err != nil {
			log.Fatalf("Failed to seed topic %q: %v", seed.name, err)
		}
		log.Printf("Seeded topic %q", seed.name)
	}
	log.Println("Topic seeding complete")
}
