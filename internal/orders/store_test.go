package orders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndRecent(t *testing.T) {
	s := openTestStore(t)

	older := Record{
		ID:             "ORD-AAAA1111",
		PlacedAt:       time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		DeliveryMethod: "pickup",
		Destination:    "DISI Helpdesk, Povo",
		Payment:        "visa",
		Total:          18.90,
		Lines: []Line{
			{ISBN: "978-88-01", Title: "Dieci A2", Quantity: 1, UnitPrice: 18.90},
		},
	}
	newer := Record{
		ID:             "ORD-BBBB2222",
		PlacedAt:       time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
		DeliveryMethod: "courier",
		Destination:    "Via Sommarive 9, Trento",
		Payment:        "mastercard",
		Total:          43.40,
		Lines: []Line{
			{ISBN: "978-88-02", Title: "Italian Short Stories", Quantity: 2, UnitPrice: 14.50},
			{ISBN: "978-88-03", Title: "Racconti in italiano", Quantity: 1, UnitPrice: 14.40},
		},
	}
	require.NoError(t, s.Save(older))
	require.NoError(t, s.Save(newer))

	recs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.Equal(t, "ORD-BBBB2222", recs[0].ID)
	require.Equal(t, "courier", recs[0].DeliveryMethod)
	require.Equal(t, newer.PlacedAt, recs[0].PlacedAt)
	require.Len(t, recs[0].Lines, 2)
	require.Equal(t, 2, recs[0].Lines[0].Quantity)

	require.Equal(t, "ORD-AAAA1111", recs[1].ID)
	require.Len(t, recs[1].Lines, 1)
}

func TestStore_RecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(Record{
			ID:             NewOrderID(),
			PlacedAt:       time.Now().Add(time.Duration(i) * time.Minute),
			DeliveryMethod: "pickup",
			Destination:    "x",
			Payment:        "visa",
		}))
	}
	recs, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	rec := Record{ID: "ORD-SAME0000", PlacedAt: time.Now(), DeliveryMethod: "pickup", Destination: "x", Payment: "visa"}
	require.NoError(t, s.Save(rec))
	require.Error(t, s.Save(rec))
}

func TestNewOrderID(t *testing.T) {
	a, b := NewOrderID(), NewOrderID()
	require.Len(t, a, 12)
	require.True(t, a[:4] == "ORD-")
	require.NotEqual(t, a, b)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "orders.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
