package diary

import (
	"sort"
	"strings"
)

// workoutRates maps a workout type to calories burned per minute.
// Russian aliases resolve to the same canonical entries.
var workoutRates = map[string]float64{
	"running":   10,
	"walking":   6,
	"swimming":  7,
	"yoga":      4,
	"tennis":    8,
	"badminton": 8,
	"dancing":   7,
}

var workoutAliases = map[string]string{
	"бег":       "running",
	"ходьба":    "walking",
	"плавание":  "swimming",
	"йога":      "yoga",
	"теннис":    "tennis",
	"бадминтон": "badminton",
	"танцы":     "dancing",
}

// WorkoutRate resolves a workout type case-insensitively and returns its
// per-minute calorie burn rate.
func WorkoutRate(workoutType string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(workoutType))
	if canonical, ok := workoutAliases[key]; ok {
		key = canonical
	}
	rate, ok := workoutRates[key]
	return rate, ok
}

// WorkoutTypes lists the known workout types in stable order.
func WorkoutTypes() []string {
	types := make([]string, 0, len(workoutRates))
	for t := range workoutRates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
