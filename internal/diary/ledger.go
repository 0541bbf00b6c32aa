package diary

import "math"

// Ledger accumulates a single user's daily intake. Counters only grow;
// there is no automatic midnight reset, a profile re-run starts fresh.
type Ledger struct {
	WaterMl        float64
	Calories       float64
	BurnedCalories float64
}

// AddWater records drunk water in milliliters.
func (l *Ledger) AddWater(ml float64) {
	l.WaterMl += ml
}

// AddFood records consumed calories.
func (l *Ledger) AddFood(kcal float64) {
	l.Calories += kcal
}

// AddWorkout records a workout at the given per-minute burn rate. Exercise
// also raises the water counter by 6 ml per minute as hydration compensation,
// reported back as extra water to drink.
func (l *Ledger) AddWorkout(ratePerMinute float64, minutes int) (burned, extraWaterMl float64) {
	burned = ratePerMinute * float64(minutes)
	extraWaterMl = math.Round(float64(minutes) * 6)
	l.BurnedCalories += burned
	l.WaterMl += extraWaterMl
	return burned, extraWaterMl
}

// Progress is a read-only snapshot of the ledger against its goals.
type Progress struct {
	LoggedWaterMl    float64
	WaterGoalMl      float64
	RemainingWaterMl float64
	LoggedCalories   float64
	CalorieGoal      float64
	BurnedCalories   float64
	CalorieBalance   float64
}

// Snapshot derives the progress view for the given goals.
func (l *Ledger) Snapshot(g Goals) Progress {
	return Progress{
		LoggedWaterMl:    l.WaterMl,
		WaterGoalMl:      g.WaterMl,
		RemainingWaterMl: math.Max(0, g.WaterMl-l.WaterMl),
		LoggedCalories:   l.Calories,
		CalorieGoal:      g.Calories,
		BurnedCalories:   l.BurnedCalories,
		CalorieBalance:   g.Calories - (l.Calories - l.BurnedCalories),
	}
}

// PendingFood is a food lookup awaiting a gram quantity from the user.
type PendingFood struct {
	Name           string
	CaloriesPer100 float64
}

// Resolve computes the calories for the given gram amount.
func (p PendingFood) Resolve(grams int) float64 {
	return p.CaloriesPer100 * float64(grams) / 100
}
