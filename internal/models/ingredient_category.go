package models

import (
	"fmt"
	"strings"
)

// IngredientCategory classifies an ingredient by food group, mainly for
// shopping-list grouping and storage advice.
type IngredientCategory string

const (
	IngredientVegetables IngredientCategory = "VEGETABLES"
	IngredientFruits     IngredientCategory = "FRUITS"
	IngredientMeat       IngredientCategory = "MEAT"
	IngredientPoultry    IngredientCategory = "POULTRY"
	IngredientSeafood    IngredientCategory = "SEAFOOD"
	IngredientDairy      IngredientCategory = "DAIRY"
	IngredientEggs       IngredientCategory = "EGGS"
	IngredientGrains     IngredientCategory = "GRAINS"
	IngredientLegumes    IngredientCategory = "LEGUMES"
	IngredientNutsSeeds  IngredientCategory = "NUTS_SEEDS"
	IngredientHerbs      IngredientCategory = "HERBS"
	IngredientSpices     IngredientCategory = "SPICES"
	IngredientOilsFats   IngredientCategory = "OILS_FATS"
	IngredientSweeteners IngredientCategory = "SWEETENERS"
	IngredientCondiments IngredientCategory = "CONDIMENTS"
	IngredientSauces     IngredientCategory = "SAUCES"
	IngredientVinegar    IngredientCategory = "VINEGAR"
	IngredientAlcohol    IngredientCategory = "ALCOHOL"
	IngredientBeverages  IngredientCategory = "BEVERAGES"
	IngredientBaking     IngredientCategory = "BAKING"
	IngredientPantry     IngredientCategory = "PANTRY"
	IngredientFrozen     IngredientCategory = "FROZEN"
	IngredientCanned     IngredientCategory = "CANNED"
	IngredientProcessed  IngredientCategory = "PROCESSED"
	IngredientOther      IngredientCategory = "OTHER"
)

var ingredientCategoryNames = map[IngredientCategory]string{
	IngredientVegetables: "Vegetables",
	IngredientFruits:     "Fruits",
	IngredientMeat:       "Meat",
	IngredientPoultry:    "Poultry",
	IngredientSeafood:    "Seafood",
	IngredientDairy:      "Dairy",
	IngredientEggs:       "Eggs",
	IngredientGrains:     "Grains",
	IngredientLegumes:    "Legumes",
	IngredientNutsSeeds:  "Nuts & Seeds",
	IngredientHerbs:      "Herbs",
	IngredientSpices:     "Spices",
	IngredientOilsFats:   "Oils & Fats",
	IngredientSweeteners: "Sweeteners",
	IngredientCondiments: "Condiments",
	IngredientSauces:     "Sauces",
	IngredientVinegar:    "Vinegar",
	IngredientAlcohol:    "Alcohol",
	IngredientBeverages:  "Beverages",
	IngredientBaking:     "Baking",
	IngredientPantry:     "Pantry",
	IngredientFrozen:     "Frozen",
	IngredientCanned:     "Canned",
	IngredientProcessed:  "Processed",
	IngredientOther:      "Other",
}

// DisplayName returns the user-facing name for the category.
func (c IngredientCategory) DisplayName() string {
	if name, ok := ingredientCategoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether the category is one of the known values.
func (c IngredientCategory) Valid() bool {
	_, ok := ingredientCategoryNames[c]
	return ok
}

// IsFresh reports whether the category covers perishable fresh goods.
func (c IngredientCategory) IsFresh() bool {
	switch c {
	case IngredientVegetables, IngredientFruits, IngredientMeat, IngredientPoultry,
		IngredientSeafood, IngredientDairy, IngredientEggs, IngredientHerbs:
		return true
	}
	return false
}

// IsProteinSource reports whether the category is protein-rich.
func (c IngredientCategory) IsProteinSource() bool {
	switch c {
	case IngredientMeat, IngredientPoultry, IngredientSeafood, IngredientEggs,
		IngredientLegumes, IngredientNutsSeeds, IngredientDairy:
		return true
	}
	return false
}

// IsPlantBased reports whether the category is plant-derived.
func (c IngredientCategory) IsPlantBased() bool {
	switch c {
	case IngredientVegetables, IngredientFruits, IngredientGrains, IngredientLegumes,
		IngredientNutsSeeds, IngredientHerbs, IngredientSpices:
		return true
	}
	return false
}

// IsAnimalProduct reports whether the category contains animal products.
func (c IngredientCategory) IsAnimalProduct() bool {
	switch c {
	case IngredientMeat, IngredientPoultry, IngredientSeafood, IngredientDairy, IngredientEggs:
		return true
	}
	return false
}

// IsSeasoning reports whether the category is a flavor enhancer.
func (c IngredientCategory) IsSeasoning() bool {
	switch c {
	case IngredientHerbs, IngredientSpices, IngredientCondiments, IngredientSauces, IngredientVinegar:
		return true
	}
	return false
}

// IsShelfStable reports whether the category keeps without refrigeration.
func (c IngredientCategory) IsShelfStable() bool {
	switch c {
	case IngredientGrains, IngredientLegumes, IngredientNutsSeeds, IngredientSpices,
		IngredientOilsFats, IngredientSweeteners, IngredientCondiments, IngredientBaking,
		IngredientPantry, IngredientCanned, IngredientProcessed:
		return true
	}
	return false
}

// RequiresRefrigeration reports whether items in the category typically need cold storage.
func (c IngredientCategory) RequiresRefrigeration() bool {
	switch c {
	case IngredientMeat, IngredientPoultry, IngredientSeafood, IngredientDairy,
		IngredientEggs, IngredientVegetables, IngredientFruits:
		return true
	}
	return false
}

// StorageRecommendation returns a short storage hint for the category.
func (c IngredientCategory) StorageRecommendation() string {
	switch {
	case c.RequiresRefrigeration():
		return "Refrigerate"
	case c == IngredientFrozen:
		return "Keep frozen"
	case c.IsShelfStable():
		return "Store in pantry"
	default:
		return "Store in cool, dry place"
	}
}

// ParseIngredientCategory resolves a category from its wire name or display
// name, case-insensitively.
func ParseIngredientCategory(s string) (IngredientCategory, error) {
	trimmed := strings.TrimSpace(s)
	upper := IngredientCategory(strings.ToUpper(strings.ReplaceAll(trimmed, " ", "_")))
	if upper.Valid() {
		return upper, nil
	}
	for c, name := range ingredientCategoryNames {
		if strings.EqualFold(name, trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown ingredient category: %q", s)
}
