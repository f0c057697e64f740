package flow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionSweepEvictsIdle(t *testing.T) {
	s := NewSessionStore()

	stale := s.GetOrCreate(1)
	stale.Step = StepEnterName
	stale.LastActivity = time.Now().Add(-time.Hour)

	fresh := s.GetOrCreate(2)
	fresh.Step = StepEnterPhone

	evicted := s.sweep(30 * time.Minute)
	assert.Equal(t, 1, evicted)

	_, ok := s.Get(1)
	assert.False(t, ok)
	_, ok = s.Get(2)
	assert.True(t, ok)
}

func TestSweeperDisabledWithZeroTTL(t *testing.T) {
	s := NewSessionStore()
	sess := s.GetOrCreate(1)
	sess.LastActivity = time.Now().Add(-24 * time.Hour)

	// ttl <= 0 never evicts
	assert.Zero(t, s.sweep(0))
	_, ok := s.Get(1)
	assert.True(t, ok)
}

// Engine handlers and the sweeper touch LastActivity from different
// goroutines; run them together so the race detector can watch.
func TestSweepConcurrentWithEngineActivity(t *testing.T) {
	sessions := NewSessionStore()
	e := NewEngine(NewApplicantGraph(ModeSingle), fakeOpenings{"Zomin": {"2-DMTT"}}, sessions)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				sessions.sweep(time.Nanosecond)
			}
		}
	}()

	for i := 0; i < 500; i++ {
		e.SelectDistrict(chatID, "Zomin")
		e.SelectJob(chatID, "Zomin", "2-DMTT")
		_, _ = e.HandleInput(chatID, Input{Text: "Ali Valiyev"})
		_, _ = e.Back(chatID, StepEnterPhone, StepEnterName)
	}
	close(done)
	wg.Wait()
}
