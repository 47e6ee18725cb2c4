package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "db.json"))
}

func TestStore_Load_MissingFile(t *testing.T) {
	s := tempStore(t)

	doc, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, doc.Flights)
	assert.Empty(t, doc.Users)
	assert.NotNil(t, doc.Hotels)
}

func TestStore_SaveAndLoad_RoundTrip(t *testing.T) {
	s := tempStore(t)

	doc := domain.NewDocument()
	doc.Hotels = append(doc.Hotels, domain.Hotel{
		ID:   1,
		Name: "Nile View",
		City: "Cairo",
		AvailableRooms: []domain.Room{
			{Type: "Single", Quantity: 5},
			{Type: "Double", Quantity: 3},
		},
	})
	require.NoError(t, s.Save(doc))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded.Hotels, 1)
	assert.Equal(t, "Nile View", loaded.Hotels[0].Name)
	assert.Equal(t, 5, loaded.Hotels[0].AvailableRooms[0].Quantity)
}

func TestStore_Update_ErrorDiscardsChanges(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Update(func(doc *domain.Document) error {
		doc.Airlines = append(doc.Airlines, domain.Airline{ID: 1, Name: "EgyptAir"})
		return nil
	}))

	boom := errors.New("boom")
	err := s.Update(func(doc *domain.Document) error {
		doc.Airlines = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Airlines, 1)
}

func TestStore_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path).Load()
	assert.Error(t, err)
}

func TestStore_Update_ConcurrentIncrements(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Update(func(doc *domain.Document) error {
		doc.Hotels = append(doc.Hotels, domain.Hotel{
			ID:             1,
			AvailableRooms: []domain.Room{{Type: "Single", Quantity: 0}},
		})
		return nil
	}))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(doc *domain.Document) error {
				doc.Hotels[0].AvailableRooms[0].Quantity++
				return nil
			})
		}()
	}
	wg.Wait()

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, writers, doc.Hotels[0].AvailableRooms[0].Quantity)
}
