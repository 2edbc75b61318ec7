package models

import (
	"fmt"
	"math"
	"strings"
)

// UnitType groups measurement units by what they measure.
type UnitType string

const (
	UnitTypeWeight  UnitType = "WEIGHT"
	UnitTypeVolume  UnitType = "VOLUME"
	UnitTypeCount   UnitType = "COUNT"
	UnitTypeSpecial UnitType = "SPECIAL"
)

// MeasurementUnit is the unit an ingredient quantity is expressed in.
// Weight and volume units carry an approximate grams-per-unit factor used for
// nutritional calculations; count units have no meaningful conversion.
type MeasurementUnit string

const (
	UnitGram     MeasurementUnit = "GRAM"
	UnitKilogram MeasurementUnit = "KILOGRAM"
	UnitOunce    MeasurementUnit = "OUNCE"
	UnitPound    MeasurementUnit = "POUND"

	UnitMilliliter MeasurementUnit = "MILLILITER"
	UnitLiter      MeasurementUnit = "LITER"
	UnitFluidOunce MeasurementUnit = "FLUID_OUNCE"
	UnitCup        MeasurementUnit = "CUP"
	UnitPint       MeasurementUnit = "PINT"
	UnitQuart      MeasurementUnit = "QUART"
	UnitGallon     MeasurementUnit = "GALLON"
	UnitTeaspoon   MeasurementUnit = "TEASPOON"
	UnitTablespoon MeasurementUnit = "TABLESPOON"

	UnitPiece   MeasurementUnit = "PIECE"
	UnitItem    MeasurementUnit = "ITEM"
	UnitSlice   MeasurementUnit = "SLICE"
	UnitClove   MeasurementUnit = "CLOVE"
	UnitHead    MeasurementUnit = "HEAD"
	UnitBunch   MeasurementUnit = "BUNCH"
	UnitPackage MeasurementUnit = "PACKAGE"
	UnitCan     MeasurementUnit = "CAN"
	UnitBottle  MeasurementUnit = "BOTTLE"

	UnitPinch   MeasurementUnit = "PINCH"
	UnitDash    MeasurementUnit = "DASH"
	UnitDrop    MeasurementUnit = "DROP"
	UnitToTaste MeasurementUnit = "TO_TASTE"
)

type unitInfo struct {
	abbreviation string
	singular     string
	plural       string
	unitType     UnitType
	grams        float64 // grams per unit; 0 means not convertible
}

var unitTable = map[MeasurementUnit]unitInfo{
	UnitGram:     {"g", "gram", "grams", UnitTypeWeight, 1},
	UnitKilogram: {"kg", "kilogram", "kilograms", UnitTypeWeight, 1000},
	UnitOunce:    {"oz", "ounce", "ounces", UnitTypeWeight, 28.35},
	UnitPound:    {"lb", "pound", "pounds", UnitTypeWeight, 453.59},

	UnitMilliliter: {"ml", "milliliter", "milliliters", UnitTypeVolume, 1},
	UnitLiter:      {"l", "liter", "liters", UnitTypeVolume, 1000},
	UnitFluidOunce: {"fl oz", "fluid ounce", "fluid ounces", UnitTypeVolume, 29.57},
	UnitCup:        {"cup", "cup", "cups", UnitTypeVolume, 240},
	UnitPint:       {"pint", "pint", "pints", UnitTypeVolume, 473},
	UnitQuart:      {"quart", "quart", "quarts", UnitTypeVolume, 946},
	UnitGallon:     {"gallon", "gallon", "gallons", UnitTypeVolume, 3785},
	UnitTeaspoon:   {"tsp", "teaspoon", "teaspoons", UnitTypeVolume, 5},
	UnitTablespoon: {"tbsp", "tablespoon", "tablespoons", UnitTypeVolume, 15},

	UnitPiece:   {"piece", "piece", "pieces", UnitTypeCount, 0},
	UnitItem:    {"item", "item", "items", UnitTypeCount, 0},
	UnitSlice:   {"slice", "slice", "slices", UnitTypeCount, 0},
	UnitClove:   {"clove", "clove", "cloves", UnitTypeCount, 0},
	UnitHead:    {"head", "head", "heads", UnitTypeCount, 0},
	UnitBunch:   {"bunch", "bunch", "bunches", UnitTypeCount, 0},
	UnitPackage: {"package", "package", "packages", UnitTypeCount, 0},
	UnitCan:     {"can", "can", "cans", UnitTypeCount, 0},
	UnitBottle:  {"bottle", "bottle", "bottles", UnitTypeCount, 0},

	UnitPinch:   {"pinch", "pinch", "pinches", UnitTypeSpecial, 0.3},
	UnitDash:    {"dash", "dash", "dashes", UnitTypeSpecial, 0.6},
	UnitDrop:    {"drop", "drop", "drops", UnitTypeSpecial, 0.05},
	UnitToTaste: {"to taste", "to taste", "to taste", UnitTypeSpecial, 0},
}

// Abbreviation returns the short form of the unit.
func (u MeasurementUnit) Abbreviation() string {
	return unitTable[u].abbreviation
}

// DisplayName returns the singular or plural form of the unit.
func (u MeasurementUnit) DisplayName(plural bool) string {
	info := unitTable[u]
	if plural {
		return info.plural
	}
	return info.singular
}

// Type returns the UnitType of the unit.
func (u MeasurementUnit) Type() UnitType {
	return unitTable[u].unitType
}

// Valid reports whether the unit is one of the known values.
func (u MeasurementUnit) Valid() bool {
	_, ok := unitTable[u]
	return ok
}

// CanConvertToGrams reports whether the unit has a grams conversion factor.
func (u MeasurementUnit) CanConvertToGrams() bool {
	return unitTable[u].grams != 0
}

// ConvertToGrams converts a quantity in this unit to grams, rounded to two
// decimal places. The second return value is false when no conversion exists.
func (u MeasurementUnit) ConvertToGrams(quantity float64) (float64, bool) {
	info, ok := unitTable[u]
	if !ok || info.grams == 0 {
		return 0, false
	}
	return math.Round(quantity*info.grams*100) / 100, true
}

// IsWeight reports whether the unit measures weight.
func (u MeasurementUnit) IsWeight() bool { return u.Type() == UnitTypeWeight }

// IsVolume reports whether the unit measures volume.
func (u MeasurementUnit) IsVolume() bool { return u.Type() == UnitTypeVolume }

// IsCount reports whether the unit counts items.
func (u MeasurementUnit) IsCount() bool { return u.Type() == UnitTypeCount }

// UnitsByType returns all units of the given type.
func UnitsByType(t UnitType) []MeasurementUnit {
	var units []MeasurementUnit
	for u, info := range unitTable {
		if info.unitType == t {
			units = append(units, u)
		}
	}
	return units
}

// ParseMeasurementUnit resolves a unit from its wire name, abbreviation,
// singular or plural form, case-insensitively.
func ParseMeasurementUnit(s string) (MeasurementUnit, error) {
	trimmed := strings.TrimSpace(s)
	upper := MeasurementUnit(strings.ToUpper(strings.ReplaceAll(trimmed, " ", "_")))
	if upper.Valid() {
		return upper, nil
	}
	lower := strings.ToLower(trimmed)
	for u, info := range unitTable {
		if info.abbreviation == lower || info.singular == lower || info.plural == lower {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown measurement unit: %q", s)
}
