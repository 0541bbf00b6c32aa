package session

import (
	"sync"
	"testing"

	"fitbot/internal/diary"
)

func TestStoreDefaultsToIdle(t *testing.T) {
	s := NewStore()
	if got := s.State(42); got != StateIdle {
		t.Fatalf("State(42) = %q, want %q", got, StateIdle)
	}
	if s.InProgress(42) {
		t.Fatal("unknown user must not be in progress")
	}
	if s.HasPending(42) {
		t.Fatal("unknown user must not have a pending food lookup")
	}
}

func TestStoreDoMutatesSession(t *testing.T) {
	s := NewStore()
	err := s.Do(1, func(sess *Session) error {
		sess.State = StateAwaitWeight
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := s.State(1); got != StateAwaitWeight {
		t.Fatalf("State(1) = %q, want %q", got, StateAwaitWeight)
	}
	if !s.InProgress(1) {
		t.Fatal("user mid-dialogue must be in progress")
	}
	if s.InProgress(2) {
		t.Fatal("other users must be unaffected")
	}
	if got := s.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1 known session", got)
	}
}

func TestStoreDoSerializesPerUser(t *testing.T) {
	s := NewStore()
	const rounds = 200

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_ = s.Do(7, func(sess *Session) error {
					sess.Ledger.AddWater(1)
					return nil
				})
			}
		}()
	}
	wg.Wait()

	_ = s.Do(7, func(sess *Session) error {
		if sess.Ledger.WaterMl != 4*rounds {
			t.Errorf("water = %v, want %v", sess.Ledger.WaterMl, 4*rounds)
		}
		return nil
	})
}

func TestCompleteReplacesSessionData(t *testing.T) {
	s := NewStore()
	_ = s.Do(9, func(sess *Session) error {
		sess.Ledger.AddWater(999)
		sess.Pending = &diary.PendingFood{Name: "banana", CaloriesPer100: 89}
		sess.State = StateAwaitCity
		return nil
	})

	p := diary.Profile{WeightKg: 70, HeightCm: 175, Age: 30, ActivityMinutes: 60, City: "Berlin"}
	g := diary.ComputeGoals(p, 20)
	_ = s.Do(9, func(sess *Session) error {
		sess.Complete(p, g)
		return nil
	})

	_ = s.Do(9, func(sess *Session) error {
		if sess.Ledger.WaterMl != 0 {
			t.Errorf("ledger must be zeroed, water = %v", sess.Ledger.WaterMl)
		}
		if sess.Pending != nil {
			t.Error("pending food must be cleared")
		}
		if sess.State != StateIdle {
			t.Errorf("state = %q, want %q", sess.State, StateIdle)
		}
		if !sess.HasProfile() || sess.Goals.WaterMl != 2600 {
			t.Errorf("goals = %+v, want water 2600", sess.Goals)
		}
		return nil
	})
}
