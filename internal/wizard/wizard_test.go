package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitbot/internal/diary"
	"fitbot/internal/session"
)

type fakeWeather struct {
	tempC float64
	err   error
	city  string
}

func (f *fakeWeather) CurrentTemperature(_ context.Context, city string) (float64, error) {
	f.city = city
	return f.tempC, f.err
}

func TestWizardFullFlow(t *testing.T) {
	weather := &fakeWeather{tempC: 20}
	w := New(weather)
	sess := &session.Session{State: session.StateIdle}

	if prompt := w.Start(sess); !strings.Contains(prompt, "weight") {
		t.Fatalf("start prompt = %q, want weight question", prompt)
	}

	steps := []struct {
		answer    string
		nextState session.State
	}{
		{"70", session.StateAwaitHeight},
		{"175", session.StateAwaitAge},
		{"30", session.StateAwaitActivity},
		{"60", session.StateAwaitCity},
	}
	ctx := context.Background()
	for _, st := range steps {
		if _, err := w.Submit(ctx, sess, st.answer); err != nil {
			t.Fatalf("Submit(%q): %v", st.answer, err)
		}
		if sess.State != st.nextState {
			t.Fatalf("after %q state = %q, want %q", st.answer, sess.State, st.nextState)
		}
	}

	reply, err := w.Submit(ctx, sess, "Berlin")
	if err != nil {
		t.Fatalf("Submit(Berlin): %v", err)
	}
	if weather.city != "Berlin" {
		t.Fatalf("weather queried for %q, want Berlin", weather.city)
	}
	if sess.State != session.StateIdle {
		t.Fatalf("state = %q, want idle after completion", sess.State)
	}
	if !sess.HasProfile() {
		t.Fatal("profile must be set after completion")
	}
	if sess.Goals.WaterMl != 2600 || sess.Goals.Calories != 1867.5 {
		t.Fatalf("goals = %+v, want water 2600, calories 1867.5", sess.Goals)
	}
	if !strings.Contains(reply, "2600") || !strings.Contains(reply, "1867.5") {
		t.Fatalf("summary %q must contain both goal figures", reply)
	}
}

func TestWizardInvalidNumberDoesNotAdvance(t *testing.T) {
	w := New(&fakeWeather{})
	sess := &session.Session{}
	w.Start(sess)

	reply, err := w.Submit(context.Background(), sess, "abc")
	var verr *diary.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if verr.Field != "weight" {
		t.Fatalf("field = %q, want weight", verr.Field)
	}
	if !strings.Contains(reply, "weight") {
		t.Fatalf("reply %q must name the field", reply)
	}
	if sess.State != session.StateAwaitWeight {
		t.Fatalf("state = %q, must not advance", sess.State)
	}
}

func TestWizardNegativeNumberRejected(t *testing.T) {
	w := New(&fakeWeather{})
	sess := &session.Session{}
	w.Start(sess)

	if _, err := w.Submit(context.Background(), sess, "-5"); err == nil {
		t.Fatal("negative weight must be rejected")
	}
	if sess.State != session.StateAwaitWeight {
		t.Fatalf("state = %q, must not advance", sess.State)
	}
}

func TestWizardWeatherFailureKeepsCityStep(t *testing.T) {
	weather := &fakeWeather{err: errors.New("city not found")}
	w := New(weather)
	sess := &session.Session{}
	w.Start(sess)

	ctx := context.Background()
	for _, answer := range []string{"70", "175", "30", "60"} {
		if _, err := w.Submit(ctx, sess, answer); err != nil {
			t.Fatalf("Submit(%q): %v", answer, err)
		}
	}

	reply, err := w.Submit(ctx, sess, "Atlantis")
	var lerr *diary.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("err = %v, want LookupError", err)
	}
	if !strings.Contains(reply, "city not found") {
		t.Fatalf("reply %q must surface the lookup failure", reply)
	}
	if sess.State != session.StateAwaitCity {
		t.Fatalf("state = %q, want city step retained", sess.State)
	}
	if sess.HasProfile() {
		t.Fatal("profile must not be installed on lookup failure")
	}
}

func TestWizardRestartClearsDraftAndPending(t *testing.T) {
	w := New(&fakeWeather{tempC: 20})
	sess := &session.Session{}
	w.Start(sess)
	if _, err := w.Submit(context.Background(), sess, "70"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	sess.Pending = &diary.PendingFood{Name: "banana", CaloriesPer100: 89}

	w.Start(sess)
	if sess.State != session.StateAwaitWeight {
		t.Fatalf("state = %q, want weight step", sess.State)
	}
	if sess.Draft.WeightKg != 0 {
		t.Fatalf("draft weight = %d, want cleared", sess.Draft.WeightKg)
	}
	if sess.Pending != nil {
		t.Fatal("pending food must be cleared on restart")
	}
}
