package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/implementation"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/database"
)

// Seeds the template catalog with the builtin structures. Existing rows for
// the same classification triple are overwritten, so the command is
// idempotent and safe to re-run after editing the builtin set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	repo := implementation.NewCatalogTemplateRepository(db)
	builtin := catalog.NewStaticCatalog()
	ctx := context.Background()

	color.Cyan("Seeding briefing template catalog...")

	for _, key := range builtin.Keys() {
		tpl, err := builtin.Get(ctx, key)
		if err != nil || tpl == nil {
			color.Red("  %s: unavailable, skipping", key)
			continue
		}
		if err := repo.Upsert(ctx, key, tpl); err != nil {
			color.Red("  %s: %v", key, err)
			continue
		}
		color.Green("  %s: %d perguntas", key, tpl.CountQuestions())
	}

	color.Cyan("Catalog seeding completed!")
}
