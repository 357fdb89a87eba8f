package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s := NewStore(ttl, zap.NewNop())
	t.Cleanup(s.Close)
	return s
}

func TestGetCreatesEmptyContext(t *testing.T) {
	s := newTestStore(t, time.Minute)

	ctx := s.Get("sid-1")
	assert.Empty(t, ctx.Entities)
	assert.Empty(t, ctx.History)
	assert.Empty(t, ctx.PlantCode)
	assert.Equal(t, 1, s.Len())
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := newTestStore(t, time.Minute)

	require.NoError(t, s.WithSession("sid-1", func(c *Context) error {
		c.Entities["vehicleNumber"] = "MH12AB1234"
		c.LastEntity = "vehicleNumber"
		c.AppendTurn("hello", "hi")
		return nil
	}))

	snap := s.Get("sid-1")
	snap.Entities["vehicleNumber"] = "tampered"
	snap.History[0].Bot = "tampered"

	fresh := s.Get("sid-1")
	assert.Equal(t, "MH12AB1234", fresh.Entities["vehicleNumber"])
	assert.Equal(t, "hi", fresh.History[0].Bot)
	assert.Equal(t, "vehicleNumber", fresh.LastEntity)
}

func TestWithSessionSerializesSameSession(t *testing.T) {
	s := newTestStore(t, time.Minute)

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithSession("sid-1", func(c *Context) error {
				// Read-modify-write that would race without serialization.
				n := len(c.History)
				c.AppendTurn("u", "b")
				if len(c.History) != n+1 {
					t.Error("interleaved history write")
				}
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.Get("sid-1").History, turns)
}

func TestDistinctSessionsAreIndependent(t *testing.T) {
	s := newTestStore(t, time.Minute)

	s.SetPlantCode("sid-a", "N205")
	s.SetPlantCode("sid-b", "NE03")

	assert.Equal(t, "N205", s.Get("sid-a").PlantCode)
	assert.Equal(t, "NE03", s.Get("sid-b").PlantCode)
}

func TestClearDiscardsContext(t *testing.T) {
	s := newTestStore(t, time.Minute)

	s.SetPlantCode("sid-1", "N205")
	s.Clear("sid-1")

	ctx := s.Get("sid-1")
	assert.Empty(t, ctx.PlantCode)
	assert.Empty(t, ctx.History)
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	s := newTestStore(t, 10*time.Millisecond)

	s.Get("sid-old")
	time.Sleep(20 * time.Millisecond)
	s.sweep(time.Now())

	assert.Equal(t, 0, s.Len())
}

func TestSweepSkipsBusySession(t *testing.T) {
	s := newTestStore(t, time.Nanosecond)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.WithSession("sid-busy", func(c *Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	s.sweep(time.Now().Add(time.Hour))
	assert.Equal(t, 1, s.Len(), "in-flight session must survive the sweep")

	close(release)
}
