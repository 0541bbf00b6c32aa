// Package wizard implements the profile setup dialogue: an ordered chain of
// questions collecting body metrics, finished by a weather lookup that fixes
// the daily goals.
package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fitbot/internal/diary"
	"fitbot/internal/session"
)

// WeatherService supplies the current temperature for a city.
type WeatherService interface {
	CurrentTemperature(ctx context.Context, city string) (float64, error)
}

// Wizard drives the setup dialogue over a user session. It holds no per-user
// state itself; everything lives in the session the caller locked.
type Wizard struct {
	Weather WeatherService
}

// New returns a wizard backed by the given weather service.
func New(weather WeatherService) *Wizard {
	return &Wizard{Weather: weather}
}

// Start begins (or restarts) the dialogue, dropping any half-filled answers
// and any stale pending food lookup.
func (w *Wizard) Start(sess *session.Session) string {
	sess.Draft = diary.Profile{}
	sess.Pending = nil
	sess.State = session.StateAwaitWeight
	return promptWeight
}

const (
	promptWeight   = "Let's set up your profile. What is your weight in kg?"
	promptHeight   = "What is your height in cm?"
	promptAge      = "How old are you?"
	promptActivity = "How many minutes per day are you active?"
	promptCity     = "Which city are you in? I'll check the weather there."
)

// Submit consumes the user's answer for the current step and returns the
// next prompt. Invalid numeric answers keep the state unchanged so the user
// can retry; a failed weather lookup keeps the dialogue at the city step.
func (w *Wizard) Submit(ctx context.Context, sess *session.Session, text string) (string, error) {
	text = strings.TrimSpace(text)

	switch sess.State {
	case session.StateAwaitWeight:
		v, err := parseField(text, "weight")
		if err != nil {
			return "Please send your weight as a whole number of kg.", err
		}
		sess.Draft.WeightKg = v
		sess.State = session.StateAwaitHeight
		return promptHeight, nil

	case session.StateAwaitHeight:
		v, err := parseField(text, "height")
		if err != nil {
			return "Please send your height as a whole number of cm.", err
		}
		sess.Draft.HeightCm = v
		sess.State = session.StateAwaitAge
		return promptAge, nil

	case session.StateAwaitAge:
		v, err := parseField(text, "age")
		if err != nil {
			return "Please send your age as a whole number of years.", err
		}
		sess.Draft.Age = v
		sess.State = session.StateAwaitActivity
		return promptActivity, nil

	case session.StateAwaitActivity:
		v, err := parseField(text, "activity")
		if err != nil {
			return "Please send your activity as a whole number of minutes per day.", err
		}
		sess.Draft.ActivityMinutes = v
		sess.State = session.StateAwaitCity
		return promptCity, nil

	case session.StateAwaitCity:
		if text == "" {
			return "Please send the name of your city.", &diary.ValidationError{Field: "city", Hint: "empty"}
		}
		return w.complete(ctx, sess, text)

	default:
		return "", fmt.Errorf("wizard: submit in state %q", sess.State)
	}
}

func (w *Wizard) complete(ctx context.Context, sess *session.Session, city string) (string, error) {
	temp, err := w.Weather.CurrentTemperature(ctx, city)
	if err != nil {
		lerr := &diary.LookupError{Op: "weather", Err: err}
		return fmt.Sprintf("Could not fetch the weather for %s: %v. Send another city or run /set_profile to start over.", city, err), lerr
	}

	sess.Draft.City = city
	goals := diary.ComputeGoals(sess.Draft, temp)
	sess.Complete(sess.Draft, goals)

	return fmt.Sprintf(
		"Profile saved!\nTemperature in %s: %s°C\nDaily water goal: %s ml\nDaily calorie goal: %s kcal",
		city, trimFloat(temp), trimFloat(goals.WaterMl), trimFloat(goals.Calories),
	), nil
}

func parseField(text, field string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil || v < 0 {
		return 0, &diary.ValidationError{Field: field, Hint: "expected a non-negative whole number"}
	}
	return v, nil
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
