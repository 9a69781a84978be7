// Seeds a handful of recipes through the store, for local development.
package main

import (
	"context"
	"log"

	"github.com/AmirKakon/recipe-rack/config"
	"github.com/AmirKakon/recipe-rack/internal/database"
	"github.com/AmirKakon/recipe-rack/internal/model"
	"github.com/AmirKakon/recipe-rack/internal/normalize"
	"github.com/AmirKakon/recipe-rack/internal/service"
)

var seedRecipes = []model.RecipeForm{
	{
		Title: "Classic Margherita Pizza",
		Ingredients: []model.IngredientForm{
			{Name: "Pizza dough", Quantity: "1 ball"},
			{Name: "San Marzano tomatoes", Quantity: "400g"},
			{Name: "Fresh mozzarella", Quantity: "200g"},
			{Name: "Basil leaves", Quantity: "1 handful"},
		},
		Instructions: []string{
			"Preheat the oven to its highest setting with a pizza stone inside.",
			"Stretch the dough into a thin round.",
			"Top with crushed tomatoes, torn mozzarella and a drizzle of olive oil.",
			"Bake until the crust is blistered, then finish with basil.",
		},
		Cuisine:     "Italian",
		PrepTime:    "20 minutes",
		CookTime:    "10 minutes",
		ServingSize: "2 servings",
	},
	{
		Title: "Chicken Tikka Masala",
		Ingredients: []model.IngredientForm{
			{Name: "Chicken thighs", Quantity: "600g"},
			{Name: "Plain yogurt", Quantity: "150g"},
			{Name: "Garam masala", Quantity: "2 tsp"},
			{Name: "Tomato passata", Quantity: "400ml"},
			{Name: "Double cream", Quantity: "100ml"},
		},
		Instructions: []string{
			"Marinate the chicken in yogurt and spices for at least an hour.",
			"Char the chicken under a hot grill.",
			"Simmer the sauce, add the chicken and finish with cream.",
		},
		Cuisine:     "Indian, Curry",
		PrepTime:    "1 hour 15 minutes",
		CookTime:    "30 minutes",
		ServingSize: "4 servings",
	},
	{
		Title: "Avocado Toast",
		Ingredients: []model.IngredientForm{
			{Name: "Sourdough bread", Quantity: "2 slices"},
			{Name: "Ripe avocado", Quantity: "1"},
			{Name: "Lemon juice", Quantity: "1 tsp"},
			{Name: "Chili flakes", Quantity: "a pinch"},
		},
		Instructions: []string{
			"Toast the bread.",
			"Mash the avocado with lemon juice and salt, spread, and top with chili flakes.",
		},
		Cuisine:     "Breakfast, Quick",
		PrepTime:    "5 minutes",
		CookTime:    "3 minutes",
		ServingSize: "1 serving",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	for _, form := range seedRecipes {
		if err := form.Validate(); err != nil {
			log.Fatalf("Seed recipe %q is invalid: %v", form.Title, err)
		}
		id, err := recipes.CreateRecipe(ctx, normalize.Outbound(form))
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", form.Title, err)
		}
		log.Printf("Seeded recipe %q as %s", form.Title, id)
	}
}
