package models

import (
	"fmt"
	"strings"
)

// RecipeCategory classifies a recipe by the kind of dish it produces.
type RecipeCategory string

const (
	CategoryAppetizer   RecipeCategory = "APPETIZER"
	CategoryMainCourse  RecipeCategory = "MAIN_COURSE"
	CategorySideDish    RecipeCategory = "SIDE_DISH"
	CategoryDessert     RecipeCategory = "DESSERT"
	CategorySoup        RecipeCategory = "SOUP"
	CategorySalad       RecipeCategory = "SALAD"
	CategoryBeverage    RecipeCategory = "BEVERAGE"
	CategoryBreakfast   RecipeCategory = "BREAKFAST"
	CategoryLunch       RecipeCategory = "LUNCH"
	CategoryDinner      RecipeCategory = "DINNER"
	CategorySnack       RecipeCategory = "SNACK"
	CategorySauce       RecipeCategory = "SAUCE"
	CategoryMarinade    RecipeCategory = "MARINADE"
	CategoryPasta       RecipeCategory = "PASTA"
	CategoryPizza       RecipeCategory = "PIZZA"
	CategoryBread       RecipeCategory = "BREAD"
	CategoryCake        RecipeCategory = "CAKE"
	CategoryCookie      RecipeCategory = "COOKIE"
	CategorySmoothie    RecipeCategory = "SMOOTHIE"
	CategoryCocktail    RecipeCategory = "COCKTAIL"
	CategoryVegan       RecipeCategory = "VEGAN"
	CategoryVegetarian  RecipeCategory = "VEGETARIAN"
	CategoryGlutenFree  RecipeCategory = "GLUTEN_FREE"
	CategoryKeto        RecipeCategory = "KETO"
	CategoryLowCarb     RecipeCategory = "LOW_CARB"
	CategoryHighProtein RecipeCategory = "HIGH_PROTEIN"
	CategoryHealthy     RecipeCategory = "HEALTHY"
	CategoryComfortFood RecipeCategory = "COMFORT_FOOD"
	CategoryIntl        RecipeCategory = "INTERNATIONAL"
	CategoryFusion      RecipeCategory = "FUSION"
	CategoryOther       RecipeCategory = "OTHER"
)

var recipeCategoryNames = map[RecipeCategory]string{
	CategoryAppetizer:   "Appetizer",
	CategoryMainCourse:  "Main Course",
	CategorySideDish:    "Side Dish",
	CategoryDessert:     "Dessert",
	CategorySoup:        "Soup",
	CategorySalad:       "Salad",
	CategoryBeverage:    "Beverage",
	CategoryBreakfast:   "Breakfast",
	CategoryLunch:       "Lunch",
	CategoryDinner:      "Dinner",
	CategorySnack:       "Snack",
	CategorySauce:       "Sauce",
	CategoryMarinade:    "Marinade",
	CategoryPasta:       "Pasta",
	CategoryPizza:       "Pizza",
	CategoryBread:       "Bread",
	CategoryCake:        "Cake",
	CategoryCookie:      "Cookie",
	CategorySmoothie:    "Smoothie",
	CategoryCocktail:    "Cocktail",
	CategoryVegan:       "Vegan",
	CategoryVegetarian:  "Vegetarian",
	CategoryGlutenFree:  "Gluten Free",
	CategoryKeto:        "Keto",
	CategoryLowCarb:     "Low Carb",
	CategoryHighProtein: "High Protein",
	CategoryHealthy:     "Healthy",
	CategoryComfortFood: "Comfort Food",
	CategoryIntl:        "International",
	CategoryFusion:      "Fusion",
	CategoryOther:       "Other",
}

// DisplayName returns the user-facing name for the category.
func (c RecipeCategory) DisplayName() string {
	if name, ok := recipeCategoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether the category is one of the known values.
func (c RecipeCategory) Valid() bool {
	_, ok := recipeCategoryNames[c]
	return ok
}

// IsDietary reports whether the category marks a dietary restriction or preference.
func (c RecipeCategory) IsDietary() bool {
	switch c {
	case CategoryVegan, CategoryVegetarian, CategoryGlutenFree,
		CategoryKeto, CategoryLowCarb, CategoryHighProtein, CategoryHealthy:
		return true
	}
	return false
}

// IsMealTime reports whether the category names a meal time.
func (c RecipeCategory) IsMealTime() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack:
		return true
	}
	return false
}

// IsCourse reports whether the category names a course within a meal.
func (c RecipeCategory) IsCourse() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategorySideDish, CategoryDessert:
		return true
	}
	return false
}

// ParseRecipeCategory resolves a category from its wire name or display name,
// case-insensitively.
func ParseRecipeCategory(s string) (RecipeCategory, error) {
	trimmed := strings.TrimSpace(s)
	upper := RecipeCategory(strings.ToUpper(strings.ReplaceAll(trimmed, " ", "_")))
	if upper.Valid() {
		return upper, nil
	}
	for c, name := range recipeCategoryNames {
		if strings.EqualFold(name, trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown recipe category: %q", s)
}
