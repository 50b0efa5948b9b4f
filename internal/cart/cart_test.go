package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carts.json")
	return NewStore(NewFileStorage(path), testLogger{}), path
}

var (
	phoBo   = Item{ID: 100, Name: "Pho Bo", UnitPrice: 50000}
	goiCuon = Item{ID: 101, Name: "Goi Cuon", UnitPrice: 30000}
)

func TestAddItem(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddItem(1, phoBo, 1))
	require.NoError(t, store.AddItem(1, goiCuon, 2))

	lines := store.Lines(1)
	require.Len(t, lines, 2)
	assert.Equal(t, "Pho Bo", lines[0].Name)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddItem(1, phoBo, 1))
	require.NoError(t, store.AddItem(1, phoBo, 2))

	lines := store.Lines(1)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddItemNormalizesQuantity(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.AddItem(1, phoBo, 0))
	require.NoError(t, store.AddItem(2, phoBo, -5))

	assert.Equal(t, 1, store.Lines(1)[0].Quantity)
	assert.Equal(t, 1, store.Lines(2)[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.AddItem(0, phoBo, 1), ErrInvalidRestaurantID)
	assert.ErrorIs(t, store.AddItem(1, Item{ID: 0}, 1), ErrInvalidItem)
}

func TestSetQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(1, phoBo, 1))

	require.NoError(t, store.SetQuantity(1, phoBo.ID, 5))
	assert.Equal(t, 5, store.Lines(1)[0].Quantity)

	assert.ErrorIs(t, store.SetQuantity(1, 999, 2), ErrItemNotFound)
}

func TestSetQuantityRemovesLineAtZero(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(1, phoBo, 2))
	require.NoError(t, store.AddItem(1, goiCuon, 1))

	require.NoError(t, store.SetQuantity(1, phoBo.ID, 0))

	lines := store.Lines(1)
	require.Len(t, lines, 1)
	assert.Equal(t, goiCuon.ID, lines[0].MenuItemID)
}

func TestSetNote(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(1, phoBo, 1))

	require.NoError(t, store.SetNote(1, phoBo.ID, "no onions"))
	require.NotNil(t, store.Lines(1)[0].Note)
	assert.Equal(t, "no onions", *store.Lines(1)[0].Note)

	// Пустая строка убирает пожелание
	require.NoError(t, store.SetNote(1, phoBo.ID, ""))
	assert.Nil(t, store.Lines(1)[0].Note)

	assert.ErrorIs(t, store.SetNote(1, 999, "x"), ErrItemNotFound)
}

func TestClearIsolatedPerRestaurant(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(1, phoBo, 1))
	require.NoError(t, store.AddItem(2, goiCuon, 3))

	store.Clear(1)

	assert.Empty(t, store.Lines(1))
	require.Len(t, store.Lines(2), 1)
	assert.Equal(t, 3, store.Lines(2)[0].Quantity)
}

func TestSummarize(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.AddItem(1, phoBo, 1))
	require.NoError(t, store.AddItem(1, goiCuon, 2))

	summary := store.Summarize(1)
	assert.Equal(t, 3, summary.ItemCount)
	// 50000*1 + 30000*2
	assert.Equal(t, 110000.0, summary.TotalPrice)

	assert.Equal(t, Summary{}, store.Summarize(99))
}

func TestStateSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.json")
	storage := NewFileStorage(path)

	store := NewStore(storage, testLogger{})
	require.NoError(t, store.AddItem(1, phoBo, 2))
	require.NoError(t, store.SetNote(1, phoBo.ID, "extra herbs"))
	require.NoError(t, store.AddItem(2, goiCuon, 1))

	// Новый Store поверх того же файла видит сохраненное состояние
	reopened := NewStore(storage, testLogger{})

	lines := reopened.Lines(1)
	require.Len(t, lines, 1)
	assert.Equal(t, phoBo.ID, lines[0].MenuItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	require.NotNil(t, lines[0].Note)
	assert.Equal(t, "extra herbs", *lines[0].Note)

	assert.Len(t, reopened.Lines(2), 1)
}

func TestCorruptedStateStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(NewFileStorage(path), testLogger{})
	assert.Empty(t, store.Lines(1))

	// Корзина остается рабочей
	require.NoError(t, store.AddItem(1, phoBo, 1))
	assert.Len(t, store.Lines(1), 1)
}
