// Package diary holds the nutrition domain model: user profiles, daily
// goals derived from them, and the running ledger of water and calories.
package diary

// Profile contains the body metrics collected by the setup dialogue.
type Profile struct {
	WeightKg        int
	HeightCm        int
	Age             int
	ActivityMinutes int
	City            string
}

// Goals are the daily targets derived from a profile and the local temperature.
type Goals struct {
	WaterMl  float64
	Calories float64
}

// ComputeGoals derives daily water and calorie targets.
//
// Water: 30 ml per kg of body weight, plus 500 ml per full 30 minutes of
// daily activity, plus 500 ml extra in hot weather (above 25°C).
// Calories: simplified Mifflin-St Jeor with a fixed 200 kcal activity margin.
func ComputeGoals(p Profile, temperatureC float64) Goals {
	water := float64(p.WeightKg)*30 + float64(p.ActivityMinutes/30)*500
	if temperatureC > 25 {
		water += 500
	}
	calories := 10*float64(p.WeightKg) + 6.25*float64(p.HeightCm) - 5*float64(p.Age) + 200
	return Goals{WaterMl: water, Calories: calories}
}
