package models

import (
	"fmt"
	"strings"
)

// Difficulty grades the cooking skill a recipe demands, from BEGINNER to EXPERT.
type Difficulty string

const (
	DifficultyBeginner Difficulty = "BEGINNER"
	DifficultyEasy     Difficulty = "EASY"
	DifficultyMedium   Difficulty = "MEDIUM"
	DifficultyHard     Difficulty = "HARD"
	DifficultyExpert   Difficulty = "EXPERT"
)

type difficultyInfo struct {
	displayName string
	description string
	level       int
}

var difficultyTable = map[Difficulty]difficultyInfo{
	DifficultyBeginner: {"Beginner", "Perfect for cooking newcomers", 1},
	DifficultyEasy:     {"Easy", "Simple techniques and common ingredients", 2},
	DifficultyMedium:   {"Medium", "Some cooking experience recommended", 3},
	DifficultyHard:     {"Hard", "Advanced techniques and skills required", 4},
	DifficultyExpert:   {"Expert", "Professional-level complexity", 5},
}

// DisplayName returns the user-facing name for the difficulty.
func (d Difficulty) DisplayName() string {
	if info, ok := difficultyTable[d]; ok {
		return info.displayName
	}
	return string(d)
}

// Description returns a short explanation of what the level entails.
func (d Difficulty) Description() string {
	return difficultyTable[d].description
}

// Level returns the numeric difficulty level, 1 through 5.
func (d Difficulty) Level() int {
	return difficultyTable[d].level
}

// Valid reports whether the difficulty is one of the known values.
func (d Difficulty) Valid() bool {
	_, ok := difficultyTable[d]
	return ok
}

// IsBeginnerFriendly reports whether the level suits inexperienced cooks.
func (d Difficulty) IsBeginnerFriendly() bool {
	return d == DifficultyBeginner || d == DifficultyEasy
}

// IsAdvanced reports whether the level requires advanced skills.
func (d Difficulty) IsAdvanced() bool {
	return d == DifficultyHard || d == DifficultyExpert
}

// Previous returns the next-easier level, or empty for BEGINNER.
func (d Difficulty) Previous() Difficulty {
	return DifficultyFromLevel(d.Level() - 1)
}

// Next returns the next-harder level, or empty for EXPERT.
func (d Difficulty) Next() Difficulty {
	return DifficultyFromLevel(d.Level() + 1)
}

// DifficultyFromLevel resolves a difficulty by its numeric level. It returns
// the empty value when the level is out of range.
func DifficultyFromLevel(level int) Difficulty {
	for d, info := range difficultyTable {
		if info.level == level {
			return d
		}
	}
	return ""
}

// ParseDifficulty resolves a difficulty from its wire name or display name,
// case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	trimmed := strings.TrimSpace(s)
	upper := Difficulty(strings.ToUpper(trimmed))
	if upper.Valid() {
		return upper, nil
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}
