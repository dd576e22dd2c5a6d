package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/config"
	"github.com/chopsmo/chopsmo-go/backend/internal/database"
	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

var basicIngredients = []models.BasicIngredient{
	{Name: "salt", Region: "global"},
	{Name: "water", Region: "global"},
	{Name: "oil", Region: "global"},
	{Name: "pepper", Region: "global"},
	{Name: "onion", Region: "global"},
	{Name: "maggi", Region: "cameroon"},
	{Name: "palm oil", Region: "cameroon"},
	{Name: "crayfish", Region: "cameroon"},
}

var badIngredients = []models.BadIngredient{
	{Type: models.BadIngredientPair, Ingredients: "milk,lime"},
	{Type: models.BadIngredientPair, Ingredients: "fish,milk"},
	{Type: models.BadIngredientTriplet, Ingredients: "honey,ghee,radish"},
	{Type: models.BadIngredientCategory, Ingredients: "bleach,detergent,soap", Category: "cleaning agents", Description: "household chemicals, never food"},
	{Type: models.BadIngredientCategory, Ingredients: "kerosene,petrol", Category: "fuels", Description: "not edible in any quantity"},
}

var substitutions = []models.IngredientSubstitution{
	{Ingredient: "butter", Substitutions: models.JSONBStringArray{"margarine", "palm oil"}},
	{Ingredient: "crayfish", Substitutions: models.JSONBStringArray{"dried shrimp"}},
	{Ingredient: "maggi", Substitutions: models.JSONBStringArray{"bouillon cube", "salt"}, Notes: "adjust salt to taste"},
}

var rules = []models.DietaryRule{
	{
		Name:               "vegetarian",
		ExcludeIngredients: models.JSONBStringArray{"beef", "chicken", "fish", "goat meat", "crayfish"},
		Priority:           10,
	},
	{
		Name:               "hearty",
		IncludeIngredients: models.JSONBStringArray{"beef", "goat meat", "chicken", "plantain", "cocoyam"},
		MinIngredients:     2,
		Priority:           5,
	},
}

var recipes = []models.Recipe{
	{
		Title:       "Ndole",
		Description: "Bitterleaf stew with groundnuts and smoked fish",
		Instructions: models.JSONBStringArray{
			"Wash the bitterleaf until the bitterness fades",
			"Blend the groundnuts and cook with the leaves",
			"Season and simmer with the fish",
		},
		Ingredients: models.RecipeIngredients{
			{Name: "bitterleaf", Quantity: 500, Unit: "g"},
			{Name: "groundnut", Quantity: 300, Unit: "g"},
			{Name: "smoked fish", Quantity: 200, Unit: "g"},
			{Name: "crayfish", Quantity: 50, Unit: "g"},
			{Name: "onion", Quantity: 1, Unit: "piece"},
			{Name: "salt", Quantity: 1, Unit: "tsp"},
		},
		Categories: models.JSONBStringArray{"stew"},
		Cuisines:   models.JSONBStringArray{"cameroonian"},
		MealTypes:  models.JSONBStringArray{"lunch", "dinner"},
		IsActive:   true,
		Approved:   true,
	},
	{
		Title:       "Jollof Rice",
		Description: "Rice cooked in a seasoned tomato base",
		Instructions: models.JSONBStringArray{
			"Fry the tomato paste with onion",
			"Add rice and stock, cover and cook on low heat",
		},
		Ingredients: models.RecipeIngredients{
			{Name: "rice", Quantity: 500, Unit: "g"},
			{Name: "tomato", Quantity: 4, Unit: "piece"},
			{Name: "onion", Quantity: 2, Unit: "piece"},
			{Name: "oil", Quantity: 4, Unit: "tbsp"},
			{Name: "pepper", Quantity: 1, Unit: "piece"},
			{Name: "salt", Quantity: 1, Unit: "tsp"},
		},
		Categories: models.JSONBStringArray{"rice"},
		Cuisines:   models.JSONBStringArray{"west african"},
		MealTypes:  models.JSONBStringArray{"lunch", "dinner"},
		IsActive:   true,
		Approved:   true,
	},
	{
		Title:       "Puff Puff",
		Description: "Deep fried sweet dough balls",
		Instructions: models.JSONBStringArray{
			"Mix flour, yeast, sugar and water and let it rise",
			"Deep fry spoonfuls until golden",
		},
		Ingredients: models.RecipeIngredients{
			{Name: "flour", Quantity: 500, Unit: "g"},
			{Name: "sugar", Quantity: 100, Unit: "g"},
			{Name: "yeast", Quantity: 7, Unit: "g"},
			{Name: "water", Quantity: 400, Unit: "ml"},
			{Name: "oil", Quantity: 1, Unit: "l"},
		},
		Categories: models.JSONBStringArray{"snack"},
		Cuisines:   models.JSONBStringArray{"west african"},
		MealTypes:  models.JSONBStringArray{"breakfast", "snack"},
		IsActive:   true,
		Approved:   true,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	contributor, err := seedContributor(db)
	if err != nil {
		log.Fatalf("Failed to seed contributor: %v", err)
	}

	for _, b := range basicIngredients {
		if err := db.Where("name = ?", b.Name).FirstOrCreate(&b).Error; err != nil {
			log.Fatalf("Failed to seed basic ingredient %s: %v", b.Name, err)
		}
	}

	for _, bad := range badIngredients {
		if err := db.Where("type = ? AND ingredients = ?", bad.Type, bad.Ingredients).FirstOrCreate(&bad).Error; err != nil {
			log.Fatalf("Failed to seed bad ingredient entry: %v", err)
		}
	}

	for _, sub := range substitutions {
		if err := db.Where("ingredient = ?", sub.Ingredient).FirstOrCreate(&sub).Error; err != nil {
			log.Fatalf("Failed to seed substitution for %s: %v", sub.Ingredient, err)
		}
	}

	for _, rule := range rules {
		if err := db.Where("name = ? AND user_id IS NULL", rule.Name).FirstOrCreate(&rule).Error; err != nil {
			log.Fatalf("Failed to seed rule %s: %v", rule.Name, err)
		}
	}

	recipeService := service.NewRecipeService(db, nil, nil)
	for _, r := range recipes {
		var existing models.Recipe
		err := db.Where("title = ?", r.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up recipe %s: %v", r.Title, err)
		}
		r.ContributorID = &contributor.ID
		if _, err := recipeService.CreateRecipe(ctx, &r); err != nil {
			log.Fatalf("Failed to seed recipe %s: %v", r.Title, err)
		}
	}

	log.Println("Seed data applied")
}

func seedContributor(db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", "kitchen@chopsmo.test").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("chopsmo-seed"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Username:              "chopsmo-kitchen",
		Email:                 "kitchen@chopsmo.test",
		PasswordHash:          string(hash),
		Role:                  models.RoleContributor,
		IsVerifiedContributor: true,
		Region:                "cameroon",
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
