// Package session keeps per-user conversation and diary state in memory.
package session

import "fitbot/internal/diary"

// State identifies the step of the profile setup dialogue a user is in.
type State string

const (
	// StateIdle indicates there is no active dialogue with the user.
	StateIdle State = "idle"
	// StateAwaitWeight waits for body weight in kilograms.
	StateAwaitWeight State = "await_weight"
	// StateAwaitHeight waits for height in centimeters.
	StateAwaitHeight State = "await_height"
	// StateAwaitAge waits for age in years.
	StateAwaitAge State = "await_age"
	// StateAwaitActivity waits for daily activity in minutes.
	StateAwaitActivity State = "await_activity"
	// StateAwaitCity waits for the city used for the weather lookup.
	StateAwaitCity State = "await_city"
)

// Session holds everything the bot knows about one user. A session without
// a completed Profile rejects diary commands.
type Session struct {
	State State

	// Draft accumulates answers while the setup dialogue runs.
	Draft diary.Profile

	Profile *diary.Profile
	Goals   diary.Goals
	Ledger  diary.Ledger

	Pending *diary.PendingFood
}

// HasProfile reports whether setup has completed at least once.
func (s *Session) HasProfile() bool {
	return s.Profile != nil
}

// Complete installs the finished profile with its goals and a zeroed ledger,
// dropping any leftover pending food lookup from a previous profile.
func (s *Session) Complete(p diary.Profile, g diary.Goals) {
	profile := p
	s.Profile = &profile
	s.Goals = g
	s.Ledger = diary.Ledger{}
	s.Pending = nil
	s.State = StateIdle
	s.Draft = diary.Profile{}
}
