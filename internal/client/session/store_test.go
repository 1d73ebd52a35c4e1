package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
)

func TestStore_ZeroStateIsAnonymous(t *testing.T) {
	s := NewStore()
	st := s.Get()
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated())
}

func TestStore_SetUserAndReset(t *testing.T) {
	s := NewStore()
	s.SetLoading(true)
	s.SetUser(&models.Identity{UserID: 3, Email: "a@b.c"})

	st := s.Get()
	require.NotNil(t, st.User)
	assert.Equal(t, int64(3), st.User.UserID)
	assert.True(t, st.Loading)
	assert.True(t, st.Authenticated())

	s.Reset()
	assert.Nil(t, s.User())
	assert.False(t, s.Get().Loading)
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := NewStore()
	u := &models.Identity{UserID: 1, Email: "x@y.z"}
	s.SetUser(u)

	u.Email = "changed"
	got := s.User()
	assert.Equal(t, "x@y.z", got.Email)

	got.Email = "also changed"
	assert.Equal(t, "x@y.z", s.User().Email)
}

func TestStore_SubscribersSeeEveryWriteInOrder(t *testing.T) {
	s := NewStore()

	var calls []string
	unsubA := s.Subscribe(func(st State) {
		calls = append(calls, "a")
	})
	s.Subscribe(func(st State) {
		calls = append(calls, "b")
	})

	s.SetLoading(true)
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA()
	calls = nil
	s.SetUser(&models.Identity{UserID: 1})
	assert.Equal(t, []string{"b"}, calls)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := NewStore()
	var seen State
	s.Subscribe(func(st State) { seen = s.Get() })

	s.SetUser(&models.Identity{UserID: 9})
	require.NotNil(t, seen.User)
	assert.Equal(t, int64(9), seen.User.UserID)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Get()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.SetUser(&models.Identity{UserID: int64(j + 1)})
	}
	wg.Wait()
	assert.Equal(t, int64(100), s.User().UserID)
}

func TestStore_EachSubscriberGetsItsOwnCopy(t *testing.T) {
	s := NewStore()
	s.Subscribe(func(st State) {
		if st.User != nil {
			st.User.Email = "tampered"
		}
	})
	var seen string
	s.Subscribe(func(st State) {
		if st.User != nil {
			seen = st.User.Email
		}
	})

	s.SetUser(&models.Identity{UserID: 1, Email: "x@y.z"})

	assert.Equal(t, "x@y.z", seen)
	assert.Equal(t, "x@y.z", s.User().Email)
}

func TestStore_ConcurrentWritersDeliverInApplyOrder(t *testing.T) {
	s := NewStore()

	var (
		mu   sync.Mutex
		last int64
	)
	s.Subscribe(func(st State) {
		mu.Lock()
		defer mu.Unlock()
		if st.User != nil {
			last = st.User.UserID
		}
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.SetUser(&models.Identity{UserID: id})
		}(int64(i))
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, s.User().UserID, last, "last delivered snapshot matches the stored state")
}
