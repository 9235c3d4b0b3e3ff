package main

import (
	"log"

	"github.com/grocerly/backend/config"
	"github.com/grocerly/backend/internal/database"
	"github.com/grocerly/backend/internal/models"
	"gorm.io/gorm"
)

// Seeds the supermarket catalog and a starter set of public ingredients.
// Idempotent: existing rows are matched by name and left untouched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedSupermarkets(db); err != nil {
		log.Fatalf("failed to seed supermarkets: %v", err)
	}
	if err := seedIngredients(db); err != nil {
		log.Fatalf("failed to seed ingredients: %v", err)
	}

	log.Println("seed complete")
}

func seedSupermarkets(db *gorm.DB) error {
	names := []string{
		"Albert Heijn",
		"Jumbo",
		"Lidl",
		"Aldi",
		"Plus",
		"Dirk",
	}
	for _, name := range names {
		supermarket := models.Supermarket{Name: name, IsActive: true}
		if err := db.Where("name = ?", name).FirstOrCreate(&supermarket).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d supermarkets", len(names))
	return nil
}

func seedIngredients(db *gorm.DB) error {
	ingredients := []models.Ingredient{
		{Name: "Chicken breast", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatsPer100g: 3.6},
		{Name: "Brown rice", CaloriesPer100g: 111, ProteinPer100g: 2.6, CarbsPer100g: 23, FatsPer100g: 0.9},
		{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatsPer100g: 0.4},
		{Name: "Olive oil", CaloriesPer100g: 884, ProteinPer100g: 0, CarbsPer100g: 0, FatsPer100g: 100},
		{Name: "Whole milk", CaloriesPer100g: 61, ProteinPer100g: 3.2, CarbsPer100g: 4.8, FatsPer100g: 3.3},
		{Name: "Egg", CaloriesPer100g: 155, ProteinPer100g: 13, CarbsPer100g: 1.1, FatsPer100g: 11},
		{Name: "Spaghetti", CaloriesPer100g: 158, ProteinPer100g: 5.8, CarbsPer100g: 31, FatsPer100g: 0.9},
		{Name: "Tomato", CaloriesPer100g: 18, ProteinPer100g: 0.9, CarbsPer100g: 3.9, FatsPer100g: 0.2},
		{Name: "Onion", CaloriesPer100g: 40, ProteinPer100g: 1.1, CarbsPer100g: 9.3, FatsPer100g: 0.1},
		{Name: "Greek yogurt", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatsPer100g: 0.4},
		{Name: "Oats", CaloriesPer100g: 389, ProteinPer100g: 16.9, CarbsPer100g: 66, FatsPer100g: 6.9},
		{Name: "Banana", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 23, FatsPer100g: 0.3},
	}
	for i := range ingredients {
		ingredients[i].IsPublic = true
		if err := db.Where("name = ?", ingredients[i].Name).FirstOrCreate(&ingredients[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d ingredients", len(ingredients))
	return nil
}
