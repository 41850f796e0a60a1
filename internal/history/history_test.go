package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daemonp/crc8calc/internal/crc8"
)

type failingStore struct {
	MemoryStore
	saveErr   error
	deleteErr error
}

func (f *failingStore) Save(entries []Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(entries)
}

func (f *failingStore) Delete() error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryStore.Delete()
}

func add(t *testing.T, h *History, input string) Entry {
	t.Helper()
	e, err := h.Add(input, crc8.FormatHex, crc8.Compute(input, crc8.FormatHex))
	require.NoError(t, err)
	return e
}

func TestAdd(t *testing.T) {
	h, err := New(NewMemoryStore(), 0)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return at }

	e := add(t, h, "C8 64")

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, at, e.Timestamp)
	assert.Equal(t, "C8 64", e.Input)
	assert.Equal(t, crc8.FormatHex, e.Format)
	assert.Equal(t, "CRC-8/MAXIM", e.Algorithm)
	assert.Equal(t, "0xC6", e.Result)
	assert.Equal(t, uint8(0xC6), e.Full.Value)
	assert.Equal(t, []Entry{e}, h.List())
}

func TestAddRejectsFailedResult(t *testing.T) {
	h, err := New(NewMemoryStore(), 0)
	require.NoError(t, err)

	_, err = h.Add("ZZ", crc8.FormatHex, crc8.Compute("ZZ", crc8.FormatHex))
	assert.ErrorIs(t, err, ErrFailedResult)
	assert.Empty(t, h.List())
}

func TestAddEvictsOldest(t *testing.T) {
	store := NewMemoryStore()
	h, err := New(store, DefaultLimit)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		add(t, h, fmt.Sprintf("%02X", i))
	}

	entries := h.List()
	require.Len(t, entries, 10)
	assert.Equal(t, "0B", entries[0].Input)
	assert.Equal(t, "02", entries[9].Input)

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, entries, saved)
}

func TestAddTruncatesInput(t *testing.T) {
	h, err := New(NewMemoryStore(), 0)
	require.NoError(t, err)

	input := strings.Repeat("AB", 30)
	e := add(t, h, input)

	assert.Equal(t, input[:50]+"...", e.Input)
	assert.Equal(t, 30, e.Full.DataLength)
}

func TestNewTrimsToLimit(t *testing.T) {
	store := NewMemoryStore()
	seed, err := New(store, 5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		add(t, seed, fmt.Sprintf("%02X", i))
	}

	h, err := New(store, 3)
	require.NoError(t, err)
	entries := h.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "04", entries[0].Input)
}

func TestGet(t *testing.T) {
	h, err := New(NewMemoryStore(), 0)
	require.NoError(t, err)

	e := add(t, h, "FF")

	got, ok := h.Get(e.ID)
	assert.True(t, ok)
	assert.Equal(t, e, got)

	_, ok = h.Get("missing")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	store := NewMemoryStore()
	h, err := New(store, 0)
	require.NoError(t, err)
	add(t, h, "01")

	require.NoError(t, h.Clear())
	assert.Empty(t, h.List())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	store := &failingStore{saveErr: boom, deleteErr: boom}
	h, err := New(store, 0)
	require.NoError(t, err)

	_, err = h.Add("01", crc8.FormatHex, crc8.Compute("01", crc8.FormatHex))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, h.List())

	assert.ErrorIs(t, h.Clear(), boom)
}

func TestListReturnsCopy(t *testing.T) {
	h, err := New(NewMemoryStore(), 0)
	require.NoError(t, err)
	add(t, h, "01")

	entries := h.List()
	entries[0].Input = "changed"
	assert.Equal(t, "01", h.List()[0].Input)
}
