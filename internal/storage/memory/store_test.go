package memory_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func room(id, number string) domain.Room {
	return domain.Room{ID: id, Number: number, Type: domain.RoomSimple, Status: domain.RoomAvailable, ExtraCharges: decimal.Zero}
}

func seedRooms(t *testing.T, s *memory.Store, rooms ...domain.Room) {
	t.Helper()
	err := s.Update(context.Background(), func(tx *memory.Tx) error {
		for _, r := range rooms {
			if err := tx.Rooms.Insert(r); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func roomIDs(t *testing.T, s *memory.Store) []string {
	t.Helper()
	var ids []string
	require.NoError(t, s.View(context.Background(), func(tx *memory.Tx) error {
		for _, r := range tx.Rooms.List(nil) {
			ids = append(ids, r.ID)
		}
		return nil
	}))
	return ids
}

func TestInsert_DuplicateID(t *testing.T) {
	s := memory.New()
	seedRooms(t, s, room("1", "101"))

	err := s.Update(context.Background(), func(tx *memory.Tx) error {
		return tx.Rooms.Insert(room("1", "999"))
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateID))

	var got domain.Room
	require.NoError(t, s.View(context.Background(), func(tx *memory.Tx) error {
		var err error
		got, err = tx.Rooms.Get("1")
		return err
	}))
	assert.Equal(t, "101", got.Number)
}

func TestRemove_NotFound(t *testing.T) {
	s := memory.New()
	err := s.Update(context.Background(), func(tx *memory.Tx) error {
		return tx.Guests.Remove("nope")
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_PartialMerge(t *testing.T) {
	s := memory.New()
	seedRooms(t, s, room("1", "101"))

	var updated domain.Room
	require.NoError(t, s.Update(context.Background(), func(tx *memory.Tx) error {
		var err error
		updated, err = tx.Rooms.Update("1", func(r *domain.Room) { r.Status = domain.RoomCleaning })
		return err
	}))

	want := room("1", "101")
	want.Status = domain.RoomCleaning
	if diff := cmp.Diff(want, updated, decimalEqual); diff != "" {
		t.Errorf("room mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_IDIsImmutable(t *testing.T) {
	s := memory.New()
	seedRooms(t, s, room("1", "101"))

	err := s.Update(context.Background(), func(tx *memory.Tx) error {
		_, err := tx.Rooms.Update("1", func(r *domain.Room) { r.ID = "2" })
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, []string{"1"}, roomIDs(t, s))
}

func TestList_InsertionOrderAndPredicate(t *testing.T) {
	s := memory.New()
	seedRooms(t, s, room("a", "101"), room("b", "102"), room("c", "201"))

	assert.Equal(t, []string{"a", "b", "c"}, roomIDs(t, s))

	require.NoError(t, s.View(context.Background(), func(tx *memory.Tx) error {
		got := tx.Rooms.List(func(r domain.Room) bool { return r.Number[0] == '1' })
		assert.Len(t, got, 2)
		return nil
	}))
}

func TestNotes_NewestFirst(t *testing.T) {
	s := memory.New()
	for _, id := range []string{"n1", "n2", "n3"} {
		id := id
		require.NoError(t, s.Update(context.Background(), func(tx *memory.Tx) error {
			return tx.Notes.Insert(domain.ReceptionNote{ID: id, Text: id, Category: domain.NoteInfo})
		}))
	}

	var ids []string
	require.NoError(t, s.View(context.Background(), func(tx *memory.Tx) error {
		for _, n := range tx.Notes.List(nil) {
			ids = append(ids, n.ID)
		}
		return nil
	}))
	if diff := cmp.Diff([]string{"n3", "n2", "n1"}, ids); diff != "" {
		t.Errorf("note order mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_RollsBackEveryWriteOnError(t *testing.T) {
	s := memory.New()
	seedRooms(t, s, room("a", "101"), room("b", "102"), room("c", "201"))
	boom := errors.New("boom")

	err := s.Update(context.Background(), func(tx *memory.Tx) error {
		if _, err := tx.Rooms.Update("a", func(r *domain.Room) { r.ExtraCharges = decimal.NewFromInt(5) }); err != nil {
			return err
		}
		if err := tx.Rooms.Remove("b"); err != nil {
			return err
		}
		if err := tx.Rooms.Insert(room("d", "301")); err != nil {
			return err
		}
		if err := tx.Purchases.Insert(domain.Purchase{ID: "p", RoomID: "a", Price: decimal.NewFromInt(5)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"a", "b", "c"}, roomIDs(t, s))
	require.NoError(t, s.View(context.Background(), func(tx *memory.Tx) error {
		a, err := tx.Rooms.Get("a")
		require.NoError(t, err)
		assert.True(t, a.ExtraCharges.IsZero())
		assert.Equal(t, 0, tx.Purchases.Len())
		return nil
	}))
}

func TestUpdate_RollsBackOnPanic(t *testing.T) {
	s := memory.New()

	assert.Panics(t, func() {
		_ = s.Update(context.Background(), func(tx *memory.Tx) error {
			_ = tx.Rooms.Insert(room("a", "101"))
			panic("kaboom")
		})
	})
	assert.Empty(t, roomIDs(t, s))
}

func TestView_RejectsWrites(t *testing.T) {
	s := memory.New()
	err := s.View(context.Background(), func(tx *memory.Tx) error {
		return tx.Rooms.Insert(room("a", "101"))
	})
	require.Error(t, err)
	assert.Empty(t, roomIDs(t, s))
}

func TestUpdate_CanceledContext(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(tx *memory.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
