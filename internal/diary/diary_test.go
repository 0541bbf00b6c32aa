package diary

import "testing"

func TestComputeGoalsWater(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		tempC   float64
		want    float64
	}{
		{"base", Profile{WeightKg: 70}, 20, 2100},
		{"activity bonus per full half hour", Profile{WeightKg: 70, ActivityMinutes: 60}, 20, 2600},
		{"partial half hour truncates", Profile{WeightKg: 70, ActivityMinutes: 29}, 20, 2100},
		{"hot weather adds 500", Profile{WeightKg: 70, ActivityMinutes: 60}, 26, 3100},
		{"boundary 25 is not hot", Profile{WeightKg: 70}, 25, 2100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeGoals(tc.profile, tc.tempC)
			if got.WaterMl != tc.want {
				t.Fatalf("water goal = %v, want %v", got.WaterMl, tc.want)
			}
		})
	}
}

func TestComputeGoalsCalories(t *testing.T) {
	p := Profile{WeightKg: 70, HeightCm: 175, Age: 30, ActivityMinutes: 60}

	for _, temp := range []float64{10, 25, 30} {
		got := ComputeGoals(p, temp)
		if got.Calories != 1867.5 {
			t.Fatalf("calorie goal at %v°C = %v, want 1867.5", temp, got.Calories)
		}
	}
}

func TestLedgerAddWater(t *testing.T) {
	var l Ledger
	l.AddWater(300)
	l.AddWater(200)
	if l.WaterMl != 500 {
		t.Fatalf("water = %v, want 500", l.WaterMl)
	}
}

func TestLedgerAddWorkout(t *testing.T) {
	var l Ledger
	rate, ok := WorkoutRate("running")
	if !ok {
		t.Fatal("running must be a known workout")
	}
	burned, extra := l.AddWorkout(rate, 30)
	if burned != 300 {
		t.Fatalf("burned = %v, want 300", burned)
	}
	if extra != 180 {
		t.Fatalf("extra water = %v, want 180", extra)
	}
	if l.BurnedCalories != 300 || l.WaterMl != 180 {
		t.Fatalf("ledger = %+v, want burned 300, water 180", l)
	}
}

func TestWorkoutRateAliases(t *testing.T) {
	cases := []string{"running", "Running", "RUNNING", "бег", "Бег"}
	for _, name := range cases {
		rate, ok := WorkoutRate(name)
		if !ok {
			t.Fatalf("WorkoutRate(%q) not found", name)
		}
		if rate != 10 {
			t.Fatalf("WorkoutRate(%q) = %v, want 10", name, rate)
		}
	}
	if _, ok := WorkoutRate("chess"); ok {
		t.Fatal("chess must be unknown")
	}
}

func TestLedgerSnapshot(t *testing.T) {
	goals := Goals{WaterMl: 2600, Calories: 1867.5}
	l := Ledger{WaterMl: 300, Calories: 450, BurnedCalories: 300}

	p := l.Snapshot(goals)
	if p.RemainingWaterMl != 2300 {
		t.Fatalf("remaining water = %v, want 2300", p.RemainingWaterMl)
	}
	if p.CalorieBalance != 1717.5 {
		t.Fatalf("calorie balance = %v, want 1717.5", p.CalorieBalance)
	}
}

func TestSnapshotRemainingWaterFloorsAtZero(t *testing.T) {
	goals := Goals{WaterMl: 2000}
	l := Ledger{WaterMl: 2500}
	if p := l.Snapshot(goals); p.RemainingWaterMl != 0 {
		t.Fatalf("remaining water = %v, want 0", p.RemainingWaterMl)
	}
}

func TestPendingFoodResolve(t *testing.T) {
	p := PendingFood{Name: "banana", CaloriesPer100: 89}
	if got := p.Resolve(150); got != 133.5 {
		t.Fatalf("Resolve(150) = %v, want 133.5", got)
	}
}
