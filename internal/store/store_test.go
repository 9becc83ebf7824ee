package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

func sequence(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newSubmission() *Submission {
	return &Submission{
		Tree:          json.RawMessage(`{"v":2,"pts":[],"orn":[]}`),
		CarvedText:    "Noel",
		SenderName:    "Sam",
		RecipientName: "Alex",
		MessageText:   "Happy holidays",
	}
}

type factory func(t *testing.T, opts ...Option) Store

func backends() map[string]factory {
	return map[string]factory{
		"memory": func(t *testing.T, opts ...Option) Store {
			return NewMemory(opts...)
		},
		"file": func(t *testing.T, opts ...Option) Store {
			s, err := OpenFile(t.TempDir(), opts...)
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("create and get", func(t *testing.T) {
				s := open(t, WithShortIDs(sequence("abc123")), WithClock(func() time.Time { return fixedNow }))
				sub := newSubmission()
				require.NoError(t, s.Create(ctx, sub))

				assert.Equal(t, "abc123", sub.ShortID)
				assert.Len(t, sub.ID, 36)
				assert.Equal(t, fixedNow, sub.Created)
				assert.Equal(t, fixedNow, sub.Updated)

				got, err := s.GetByShortID(ctx, "abc123")
				require.NoError(t, err)
				assert.Equal(t, sub.ID, got.ID)
				assert.JSONEq(t, string(sub.Tree), string(got.Tree))
				assert.Equal(t, sub.Engraving(), got.Engraving())
				assert.Empty(t, got.Email)
			})

			t.Run("not found", func(t *testing.T) {
				s := open(t)
				_, err := s.GetByShortID(ctx, "missing")
				assert.ErrorIs(t, err, ErrNotFound)
				_, err = s.SetEmail(ctx, "missing", "a@b.c")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("collision regenerates", func(t *testing.T) {
				s := open(t, WithShortIDs(sequence("aaaa", "aaaa", "bbbb")))
				first, second := newSubmission(), newSubmission()
				require.NoError(t, s.Create(ctx, first))
				require.NoError(t, s.Create(ctx, second))
				assert.Equal(t, "aaaa", first.ShortID)
				assert.Equal(t, "bbbb", second.ShortID)
			})

			t.Run("generator exhausted", func(t *testing.T) {
				s := open(t, WithShortIDs(sequence("same")))
				require.NoError(t, s.Create(ctx, newSubmission()))
				err := s.Create(ctx, newSubmission())
				assert.ErrorIs(t, err, ErrDuplicate)
			})

			t.Run("caller short id", func(t *testing.T) {
				s := open(t)
				sub := newSubmission()
				sub.ShortID = "mine"
				require.NoError(t, s.Create(ctx, sub))
				assert.Equal(t, "mine", sub.ShortID)

				dup := newSubmission()
				dup.ShortID = "mine"
				assert.ErrorIs(t, s.Create(ctx, dup), ErrDuplicate)
			})

			t.Run("set email", func(t *testing.T) {
				now := fixedNow
				s := open(t, WithShortIDs(sequence("mail")), WithClock(func() time.Time { return now }))
				require.NoError(t, s.Create(ctx, newSubmission()))

				now = fixedNow.Add(time.Hour)
				got, err := s.SetEmail(ctx, "mail", "santa@example.com")
				require.NoError(t, err)
				assert.Equal(t, "santa@example.com", got.Email)
				assert.Equal(t, fixedNow, got.Created)
				assert.Equal(t, fixedNow.Add(time.Hour), got.Updated)

				again, err := s.GetByShortID(ctx, "mail")
				require.NoError(t, err)
				assert.Equal(t, "santa@example.com", again.Email)
			})

			t.Run("list oldest first", func(t *testing.T) {
				now := fixedNow
				s := open(t, WithShortIDs(sequence("one", "two", "three")), WithClock(func() time.Time { return now }))
				for range 3 {
					require.NoError(t, s.Create(ctx, newSubmission()))
					now = now.Add(time.Minute)
				}
				list, err := s.List(ctx)
				require.NoError(t, err)
				require.Len(t, list, 3)
				assert.Equal(t, []string{"one", "two", "three"},
					[]string{list[0].ShortID, list[1].ShortID, list[2].ShortID})
			})

			t.Run("returned values are copies", func(t *testing.T) {
				s := open(t, WithShortIDs(sequence("copy")))
				require.NoError(t, s.Create(ctx, newSubmission()))
				got, err := s.GetByShortID(ctx, "copy")
				require.NoError(t, err)
				got.CarvedText = "changed"
				got.Tree[0] = ' '

				again, err := s.GetByShortID(ctx, "copy")
				require.NoError(t, err)
				assert.Equal(t, "Noel", again.CarvedText)
				assert.Equal(t, byte('{'), again.Tree[0])
			})

			t.Run("cancelled context", func(t *testing.T) {
				s := open(t)
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				assert.ErrorIs(t, s.Create(cctx, newSubmission()), context.Canceled)
			})
		})
	}
}

func TestFileStoreReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenFile(dir, WithShortIDs(sequence("keep")))
	require.NoError(t, err)
	sub := newSubmission()
	require.NoError(t, s.Create(ctx, sub))
	_, err = s.SetEmail(ctx, "keep", "elf@example.com")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	reopened, err := OpenFile(dir, WithShortIDs(sequence("keep", "next")))
	require.NoError(t, err)

	got, err := reopened.GetByShortID(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, "elf@example.com", got.Email)

	fresh := newSubmission()
	require.NoError(t, reopened.Create(ctx, fresh))
	assert.Equal(t, "next", fresh.ShortID)

	list, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFileStoreFailedCreateLeavesSubmissionUntouched(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	s, err := OpenFile(dir, WithShortIDs(sequence("first")), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))
	require.NoError(t, os.WriteFile(dir, []byte("in the way"), 0o644))

	sub := newSubmission()
	require.Error(t, s.Create(ctx, sub))
	assert.Empty(t, sub.ID)
	assert.Empty(t, sub.ShortID)
	assert.True(t, sub.Created.IsZero())
	assert.True(t, sub.Updated.IsZero())

	_, err = s.GetByShortID(ctx, "first")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Remove(dir))
	require.NoError(t, s.Create(ctx, sub))
	assert.Equal(t, "first", sub.ShortID)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, fixedNow, sub.Created)
}

func TestOpenFileRequiresDir(t *testing.T) {
	_, err := OpenFile("")
	assert.Error(t, err)
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")
	require.NoError(t, atomicWriteFile(path, []byte(`{"a":1}`), 0o600))
	require.NoError(t, atomicWriteFile(path, []byte(`{"a":2}`), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Create(ctx, newSubmission()))
		}()
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, sub := range list {
		assert.False(t, seen[sub.ShortID], "duplicate short id %s", sub.ShortID)
		seen[sub.ShortID] = true
	}
	assert.Len(t, list, 50)
}
