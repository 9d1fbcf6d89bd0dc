package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"questdeck/internal/catalog"
	"questdeck/internal/config"
	"questdeck/internal/model"
	"questdeck/internal/repository"
)

func main() {
	dir := flag.String("dir", "", "directory with question_types.csv, type_requirements.csv, passages.csv (built-in defaults when empty or missing)")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	catalogRepo := repository.NewCatalogRepo(db)
	passageRepo := repository.NewPassageRepo(db)

	types, reqs, passages := loadSeedData(*dir)

	if err := catalogRepo.ReplaceTypes(ctx, types); err != nil {
		log.Fatalf("Failed to seed question types: %v", err)
	}
	if err := catalogRepo.ReplaceRequirements(ctx, reqs); err != nil {
		log.Fatalf("Failed to seed requirements: %v", err)
	}
	for _, p := range passages {
		passage := p
		if err := passageRepo.Upsert(ctx, &passage); err != nil {
			log.Fatalf("Failed to seed passage %s: %v", passage.TextID, err)
		}
	}

	log.Printf("Seeded %d question types, %d requirements, %d passages", len(types), len(reqs), len(passages))
}

func loadSeedData(dir string) ([]model.QuestionType, []model.Requirement, []model.Passage) {
	if dir == "" {
		log.Println("No seed directory given, using built-in defaults")
		return catalog.DefaultTypes(), catalog.DefaultRequirements(), catalog.DefaultPassages()
	}

	typeRows := readRows(filepath.Join(dir, "question_types.csv"))
	reqRows := readRows(filepath.Join(dir, "type_requirements.csv"))
	passageRows := readRows(filepath.Join(dir, "passages.csv"))

	types := catalog.ParseTypes(typeRows)
	if len(types) == 0 {
		log.Println("No usable question_types.csv, using built-in defaults")
		return catalog.DefaultTypes(), catalog.DefaultRequirements(), catalog.DefaultPassages()
	}

	passages := make([]model.Passage, 0, len(passageRows))
	for _, row := range passageRows {
		textID, features := catalog.ParseFeatures(row)
		if textID == "" {
			continue
		}
		title, _ := features["title"].(string)
		body, _ := features["body"].(string)
		delete(features, "title")
		delete(features, "body")
		passages = append(passages, model.Passage{
			TextID:   textID,
			Title:    title,
			Body:     body,
			Features: features,
		})
	}

	return types, catalog.ParseRequirements(reqRows), passages
}

// readRows reads a CSV file into header-keyed rows. Missing files are not an
// error; they yield no rows so the caller can fall back to defaults.
func readRows(path string) []catalog.Row {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Skipping %s: %v", path, err)
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		log.Printf("Skipping %s: %v", path, err)
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	rows := make([]catalog.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		raw := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				raw[col] = record[i]
			}
		}
		rows = append(rows, catalog.NewRow(raw))
	}
	return rows
}
