package metadata

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/model"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewStore(DefaultTTL, WithClock(clock.Now)), clock
}

func record(subject model.Subject, at time.Time, ai model.Size) model.CaptureMetadata {
	return model.CaptureMetadata{
		ID:                fmt.Sprintf("%s@%d", subject, at.Unix()),
		Subject:           subject,
		SourceLogicalSize: model.Size{Width: 1440, Height: 900},
		AIImageSize:       ai,
		CapturedAt:        at,
	}
}

func TestStore_GetFresh_Lifecycle(t *testing.T) {
	s, clock := newTestStore()
	subject := model.Window(7)

	_, status := s.GetFresh(subject)
	assert.Equal(t, NotFound, status)

	s.Put(record(subject, clock.Now(), model.Size{Width: 1152, Height: 720}))
	md, status := s.GetFresh(subject)
	assert.Equal(t, Fresh, status)
	assert.Equal(t, 1152, md.AIImageSize.Width)

	clock.Advance(DefaultTTL)
	_, status = s.GetFresh(subject)
	assert.Equal(t, Fresh, status, "exactly at ttl is still fresh")

	clock.Advance(time.Second)
	_, status = s.GetFresh(subject)
	assert.Equal(t, Stale, status)
}

func TestStore_PutReplaces(t *testing.T) {
	s, clock := newTestStore()
	s.Put(record(model.FullScreen(), clock.Now(), model.Size{Width: 100, Height: 100}))
	clock.Advance(time.Minute)
	s.Put(record(model.FullScreen(), clock.Now(), model.Size{Width: 200, Height: 100}))

	md, ok := s.Get(model.FullScreen())
	require.True(t, ok)
	assert.Equal(t, 200, md.AIImageSize.Width)
	assert.Equal(t, 1, s.Len())
}

func TestStore_SubjectsAreIndependent(t *testing.T) {
	s, clock := newTestStore()
	s.Put(record(model.Window(2), clock.Now(), model.Size{Width: 10, Height: 10}))
	s.Put(record(model.Window(1), clock.Now(), model.Size{Width: 20, Height: 20}))
	s.Put(record(model.FullScreen(), clock.Now(), model.Size{Width: 30, Height: 30}))

	assert.Equal(t, 3, s.Len())

	s.Delete(model.Window(1))
	_, ok := s.Get(model.Window(1))
	assert.False(t, ok)
	md, ok := s.Get(model.Window(2))
	require.True(t, ok)
	assert.Equal(t, 10, md.AIImageSize.Width)
}

func TestStore_Prune(t *testing.T) {
	s, clock := newTestStore()
	s.Put(record(model.Window(1), clock.Now(), model.Size{Width: 1, Height: 1}))
	clock.Advance(4 * time.Minute)
	s.Put(record(model.Window(2), clock.Now(), model.Size{Width: 1, Height: 1}))
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, s.Prune())
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(model.Window(2))
	assert.True(t, ok)
}

func TestStore_ConcurrentPutsNeverTear(t *testing.T) {
	s, clock := newTestStore()
	subject := model.FullScreen()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			md := record(subject, clock.Now(), model.Size{Width: i, Height: i})
			md.SourceLogicalSize = model.Size{Width: i * 2, Height: i * 2}
			s.Put(md)
			got, ok := s.Get(subject)
			if ok && got.SourceLogicalSize.Width != got.AIImageSize.Width*2 {
				t.Errorf("torn record: %+v", got)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestNewStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewStore(0).TTL())
	assert.Equal(t, time.Second, NewStore(time.Second).TTL())
}
