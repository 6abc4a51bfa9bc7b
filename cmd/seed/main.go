package main

import (
	"log"
	"time"

	"crop-advisor-be/internal/config"
	"crop-advisor-be/internal/entity"
	"crop-advisor-be/internal/pkg/logger"
	"crop-advisor-be/internal/repository/implementation"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	cfg := config.Load()

	color.Cyan("🌱 Seeding community forum demo posts\n")

	repo := implementation.NewForumRepository(cfg.Forum.FilePath, logger.NopLogger{})

	existing := repo.Load()
	if len(existing) > 0 {
		color.Yellow("Forum file already has %d posts, skipping...", len(existing))
		return
	}

	now := time.Now().Format(entity.TimestampLayout)
	posts := []entity.ForumPost{
		{Id: 3, Name: "Lakshmi Devi", Topic: "Drip irrigation for chickpea", Message: "Switched my chickpea field to drip irrigation this season and water usage dropped by almost half. Happy to share the layout I used.", Timestamp: now, Replies: []entity.ForumReply{}},
		{Id: 2, Name: "Ravi Kumar", Topic: "Nitrogen levels after paddy harvest", Message: "Soil test after paddy harvest shows nitrogen around 40. Is that enough for a maize rotation or should I add urea before sowing?", Timestamp: now, Replies: []entity.ForumReply{}},
		{Id: 1, Name: "Anita Sharma", Topic: "Welcome to the community forum", Message: "Introduce yourself and share what you are growing this season. Questions about soil health, irrigation and crop selection are all welcome here.", Timestamp: now, Replies: []entity.ForumReply{}},
	}

	if !repo.Save(posts) {
		color.Red("Failed to write %s", cfg.Forum.FilePath)
		return
	}

	color.Green("Seeded %d posts into %s", len(posts), cfg.Forum.FilePath)
}
