package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_ClaimAndHas(t *testing.T) {
	g := NewGuard()

	assert.False(t, g.Has("[recurring:T1:2024-06-01]"))
	assert.True(t, g.Claim("[recurring:T1:2024-06-01]"))
	assert.True(t, g.Has("[recurring:T1:2024-06-01]"))
}

func TestGuard_ClaimIsIdempotent(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.Claim("[recurring:T1:2024-06-01]"))
	assert.False(t, g.Claim("[recurring:T1:2024-06-01]"))
	assert.Equal(t, 1, g.Len())
}

func TestGuard_Seed(t *testing.T) {
	g := NewGuard()
	g.Seed([]string{
		"[recurring:T1:2024-06-01]",
		"[recurring:T2:2024-06-01]",
		"", // tasks without a marker contribute nothing
	})

	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has("[recurring:T1:2024-06-01]"))
	assert.True(t, g.Has("[recurring:T2:2024-06-01]"))
}

func TestGuard_SeedThenClaim(t *testing.T) {
	g := NewGuard()
	g.Seed([]string{"[recurring:T1:2024-06-01]"})

	// A seeded marker is already claimed.
	assert.False(t, g.Claim("[recurring:T1:2024-06-01]"))
}

func TestGuard_ConcurrentClaim_ExactlyOneWinner(t *testing.T) {
	g := NewGuard()

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Claim("[recurring:T1:2024-06-01]") {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}
