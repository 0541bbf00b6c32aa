package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitbot/internal/diary"
	"fitbot/internal/food"
	"fitbot/internal/session"
	"fitbot/internal/wizard"
)

type fakeFood struct {
	product food.Product
	err     error
	query   string
}

func (f *fakeFood) Search(_ context.Context, query string) (food.Product, error) {
	f.query = query
	return f.product, f.err
}

type fakeWeather struct {
	tempC float64
	err   error
}

func (f fakeWeather) CurrentTemperature(context.Context, string) (float64, error) {
	return f.tempC, f.err
}

func sessionWithProfile(t *testing.T) *session.Session {
	t.Helper()
	p := diary.Profile{WeightKg: 70, HeightCm: 175, Age: 30, ActivityMinutes: 60, City: "Berlin"}
	sess := &session.Session{}
	sess.Complete(p, diary.ComputeGoals(p, 20))
	return sess
}

func TestWaterReply(t *testing.T) {
	sess := sessionWithProfile(t)

	reply, err := waterReply(sess, "300")
	if err != nil {
		t.Fatalf("waterReply: %v", err)
	}
	if !strings.Contains(reply, "300") || !strings.Contains(reply, "2300") {
		t.Fatalf("reply %q must report total 300 and remaining 2300", reply)
	}

	reply, err = waterReply(sess, "200")
	if err != nil {
		t.Fatalf("waterReply second call: %v", err)
	}
	if !strings.Contains(reply, "500") || !strings.Contains(reply, "2100") {
		t.Fatalf("reply %q must report additive total 500 and remaining 2100", reply)
	}
}

func TestWaterReplyRejectsBadInput(t *testing.T) {
	sess := sessionWithProfile(t)

	for _, arg := range []string{"", "abc", "-5"} {
		_, err := waterReply(sess, arg)
		var verr *diary.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("waterReply(%q) err = %v, want ValidationError", arg, err)
		}
	}
	if sess.Ledger.WaterMl != 0 {
		t.Fatalf("failed parses must not mutate the ledger, water = %v", sess.Ledger.WaterMl)
	}
}

func TestWaterReplyWithoutProfile(t *testing.T) {
	sess := &session.Session{}
	reply, err := waterReply(sess, "300")
	if !errors.Is(err, diary.ErrProfileMissing) {
		t.Fatalf("err = %v, want ErrProfileMissing", err)
	}
	if !strings.Contains(reply, "/set_profile") {
		t.Fatalf("reply %q must point at profile setup", reply)
	}
}

func TestFoodFlow(t *testing.T) {
	sess := sessionWithProfile(t)
	svc := &fakeFood{product: food.Product{Name: "Banana", CaloriesPer100: 89}}

	reply, err := foodBeginReply(context.Background(), sess, svc, "banana")
	if err != nil {
		t.Fatalf("foodBeginReply: %v", err)
	}
	if svc.query != "banana" {
		t.Fatalf("query = %q, want banana", svc.query)
	}
	if sess.Pending == nil || sess.Pending.Name != "Banana" {
		t.Fatalf("pending = %+v, want Banana", sess.Pending)
	}
	if !strings.Contains(reply, "grams") {
		t.Fatalf("reply %q must ask for grams", reply)
	}

	reply, err = foodResolveReply(sess, "150")
	if err != nil {
		t.Fatalf("foodResolveReply: %v", err)
	}
	if sess.Pending != nil {
		t.Fatal("pending must be cleared after resolution")
	}
	if sess.Ledger.Calories != 133.5 {
		t.Fatalf("calories = %v, want 133.5", sess.Ledger.Calories)
	}
	if !strings.Contains(reply, "133.5") {
		t.Fatalf("reply %q must report the calories added", reply)
	}
}

func TestFoodBeginNotFound(t *testing.T) {
	sess := sessionWithProfile(t)
	svc := &fakeFood{err: food.ErrNotFound}

	reply, err := foodBeginReply(context.Background(), sess, svc, "unobtainium")
	if !errors.Is(err, food.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if sess.Pending != nil {
		t.Fatal("pending must not be created on lookup failure")
	}
	if !strings.Contains(reply, "find") {
		t.Fatalf("reply %q must say the product was not found", reply)
	}
}

func TestFoodBeginSupersedesStalePending(t *testing.T) {
	sess := sessionWithProfile(t)
	sess.Pending = &diary.PendingFood{Name: "Banana", CaloriesPer100: 89}
	svc := &fakeFood{err: food.ErrNotFound}

	_, err := foodBeginReply(context.Background(), sess, svc, "unobtainium")
	if !errors.Is(err, food.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if sess.Pending != nil {
		t.Fatal("a new lookup must drop the stale pending even when it fails")
	}
}

func TestFoodResolveBadGramsKeepsPending(t *testing.T) {
	sess := sessionWithProfile(t)
	sess.Pending = &diary.PendingFood{Name: "Banana", CaloriesPer100: 89}

	_, err := foodResolveReply(sess, "abc")
	var verr *diary.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if sess.Pending == nil {
		t.Fatal("pending must survive an invalid gram answer")
	}
	if sess.Ledger.Calories != 0 {
		t.Fatalf("calories = %v, must stay 0", sess.Ledger.Calories)
	}
}

func TestWorkoutReply(t *testing.T) {
	sess := sessionWithProfile(t)

	reply, err := workoutReply(sess, []string{"running", "30"})
	if err != nil {
		t.Fatalf("workoutReply: %v", err)
	}
	if sess.Ledger.BurnedCalories != 300 {
		t.Fatalf("burned = %v, want 300", sess.Ledger.BurnedCalories)
	}
	if sess.Ledger.WaterMl != 180 {
		t.Fatalf("water = %v, want 180 compensation", sess.Ledger.WaterMl)
	}
	if !strings.Contains(reply, "300") || !strings.Contains(reply, "180") {
		t.Fatalf("reply %q must report burn and extra water", reply)
	}
}

func TestWorkoutReplyUnknownType(t *testing.T) {
	sess := sessionWithProfile(t)

	reply, err := workoutReply(sess, []string{"chess", "30"})
	var uerr *diary.UnknownWorkoutError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UnknownWorkoutError", err)
	}
	if !strings.Contains(reply, "running") {
		t.Fatalf("reply %q must list valid types", reply)
	}
	if sess.Ledger.BurnedCalories != 0 || sess.Ledger.WaterMl != 0 {
		t.Fatal("unknown type must not mutate the ledger")
	}
}

func TestProgressReply(t *testing.T) {
	sess := sessionWithProfile(t)
	sess.Ledger.AddWater(300)
	sess.Ledger.AddFood(450)

	reply, err := progressReply(sess)
	if err != nil {
		t.Fatalf("progressReply: %v", err)
	}
	for _, want := range []string{"300", "2600", "2300", "450", "1867.5"} {
		if !strings.Contains(reply, want) {
			t.Fatalf("reply %q missing %q", reply, want)
		}
	}
}

func TestProgressReplyWithoutProfile(t *testing.T) {
	if _, err := progressReply(&session.Session{}); !errors.Is(err, diary.ErrProfileMissing) {
		t.Fatalf("err = %v, want ErrProfileMissing", err)
	}
}

func TestEndToEndSetupThenWater(t *testing.T) {
	store := session.NewStore()
	w := wizard.New(fakeWeather{tempC: 20})
	ctx := context.Background()
	const userID int64 = 1

	_ = store.Do(userID, func(sess *session.Session) error {
		w.Start(sess)
		return nil
	})
	if !store.InProgress(userID) {
		t.Fatal("setup must be in progress after start")
	}

	var summary string
	for _, answer := range []string{"70", "175", "30", "60", "Berlin"} {
		_ = store.Do(userID, func(sess *session.Session) error {
			var err error
			summary, err = w.Submit(ctx, sess, answer)
			if err != nil {
				t.Fatalf("Submit(%q): %v", answer, err)
			}
			return nil
		})
	}
	if store.InProgress(userID) {
		t.Fatal("setup must be finished")
	}
	if !strings.Contains(summary, "2600") || !strings.Contains(summary, "1867.5") {
		t.Fatalf("summary %q must contain both goals", summary)
	}

	var reply string
	_ = store.Do(userID, func(sess *session.Session) error {
		var err error
		reply, err = waterReply(sess, "300")
		return err
	})
	if !strings.Contains(reply, "300") || !strings.Contains(reply, "2300") {
		t.Fatalf("reply %q must show logged 300 and remaining 2300", reply)
	}
}
