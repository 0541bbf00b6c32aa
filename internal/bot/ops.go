package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitbot/internal/diary"
	"fitbot/internal/food"
	"fitbot/internal/session"
)

// FoodService is the product lookup used by /log_food.
type FoodService interface {
	Search(ctx context.Context, query string) (food.Product, error)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount parses a single non-negative integer command argument.
func parseAmount(arg, field, usage string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, &diary.ValidationError{Field: field, Hint: usage}
	}
	v, err := strconv.Atoi(arg)
	if err != nil || v < 0 {
		return 0, &diary.ValidationError{Field: field, Hint: usage}
	}
	return v, nil
}

// waterReply logs water intake and reports the new totals.
func waterReply(sess *session.Session, arg string) (string, error) {
	if !sess.HasProfile() {
		return msgProfileMissing, diary.ErrProfileMissing
	}
	amount, err := parseAmount(arg, "water amount", "usage: /log_water <ml>")
	if err != nil {
		return "Send the amount in ml, e.g. /log_water 300.", err
	}

	sess.Ledger.AddWater(float64(amount))
	p := sess.Ledger.Snapshot(sess.Goals)
	return fmt.Sprintf("Logged %d ml of water. Total today: %s ml. Remaining to goal: %s ml.",
		amount, trimFloat(p.LoggedWaterMl), trimFloat(p.RemainingWaterMl)), nil
}

// foodBeginReply looks the product up and arms the gram question.
func foodBeginReply(ctx context.Context, sess *session.Session, svc FoodService, productName string) (string, error) {
	if !sess.HasProfile() {
		return msgProfileMissing, diary.ErrProfileMissing
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "Send the product name, e.g. /log_food banana.", &diary.ValidationError{Field: "product", Hint: "usage: /log_food <product>"}
	}

	// A new lookup supersedes any unresolved one, even if it fails below.
	sess.Pending = nil

	product, err := svc.Search(ctx, productName)
	if err != nil {
		if errors.Is(err, food.ErrNotFound) {
			return fmt.Sprintf("Could not find %q in the food database.", productName), err
		}
		lerr := &diary.LookupError{Op: "food", Err: err}
		return fmt.Sprintf("Food lookup failed: %v. Please try again.", err), lerr
	}

	sess.Pending = &diary.PendingFood{Name: product.Name, CaloriesPer100: product.CaloriesPer100}
	return fmt.Sprintf("%s - %s kcal per 100 g. How many grams did you eat?",
		product.Name, trimFloat(product.CaloriesPer100)), nil
}

// foodResolveReply consumes the gram answer for the pending food lookup.
func foodResolveReply(sess *session.Session, gramsText string) (string, error) {
	if sess.Pending == nil {
		return "", fmt.Errorf("bot: no pending food lookup")
	}
	grams, err := parseAmount(gramsText, "grams", "a non-negative whole number")
	if err != nil {
		return "Send the amount in grams as a whole number.", err
	}

	pending := *sess.Pending
	sess.Pending = nil
	kcal := pending.Resolve(grams)
	sess.Ledger.AddFood(kcal)

	p := sess.Ledger.Snapshot(sess.Goals)
	return fmt.Sprintf("Recorded %s kcal (%s, %d g). Calorie balance: %s kcal.",
		trimFloat(kcal), pending.Name, grams, trimFloat(p.CalorieBalance)), nil
}

// workoutReply logs a workout and the hydration compensation it earns.
func workoutReply(sess *session.Session, args []string) (string, error) {
	if !sess.HasProfile() {
		return msgProfileMissing, diary.ErrProfileMissing
	}
	if len(args) < 2 {
		return "Usage: /log_workout <type> <minutes>, e.g. /log_workout running 30.",
			&diary.ValidationError{Field: "workout", Hint: "usage: /log_workout <type> <minutes>"}
	}

	workoutType := args[0]
	rate, ok := diary.WorkoutRate(workoutType)
	if !ok {
		uerr := &diary.UnknownWorkoutError{Type: workoutType}
		return fmt.Sprintf("Unknown workout type %q. Valid types: %s.",
			workoutType, strings.Join(diary.WorkoutTypes(), ", ")), uerr
	}

	minutes, err := parseAmount(args[1], "workout minutes", "a non-negative whole number")
	if err != nil {
		return "Send the duration in minutes as a whole number.", err
	}

	burned, extraWater := sess.Ledger.AddWorkout(rate, minutes)
	return fmt.Sprintf("%s for %d min: %s kcal burned. Drink an extra %s ml of water.",
		capitalize(workoutType), minutes, trimFloat(burned), trimFloat(extraWater)), nil
}

// progressReply renders the read-only daily summary.
func progressReply(sess *session.Session) (string, error) {
	if !sess.HasProfile() {
		return msgProfileMissing, diary.ErrProfileMissing
	}
	p := sess.Ledger.Snapshot(sess.Goals)
	return fmt.Sprintf(
		"Progress for today:\n"+
			"Water: %s / %s ml (remaining %s ml)\n"+
			"Calories: %s / %s kcal\n"+
			"Burned: %s kcal\n"+
			"Calorie balance: %s kcal",
		trimFloat(p.LoggedWaterMl), trimFloat(p.WaterGoalMl), trimFloat(p.RemainingWaterMl),
		trimFloat(p.LoggedCalories), trimFloat(p.CalorieGoal),
		trimFloat(p.BurnedCalories),
		trimFloat(p.CalorieBalance),
	), nil
}
