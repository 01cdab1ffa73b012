// Package memory is the in-process entity store: the single source of truth
// for rooms, guests, reservations, notes, products and purchases.
package memory

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"front_desk/internal/domain"
)

type Store struct {
	mu           sync.RWMutex
	rooms        *collection[domain.Room]
	guests       *collection[domain.Guest]
	reservations *collection[domain.Reservation]
	notes        *collection[domain.ReceptionNote]
	products     *collection[domain.Product]
	purchases    *collection[domain.Purchase]
}

func New() *Store {
	return &Store{
		rooms:        newCollection("room", func(r domain.Room) string { return r.ID }, false),
		guests:       newCollection("guest", func(g domain.Guest) string { return g.ID }, false),
		reservations: newCollection("reservation", func(r domain.Reservation) string { return r.ID }, false),
		notes:        newCollection("note", func(n domain.ReceptionNote) string { return n.ID }, true),
		products:     newCollection("product", func(p domain.Product) string { return p.ID }, false),
		purchases:    newCollection("purchase", func(p domain.Purchase) string { return p.ID }, false),
	}
}

// Tx exposes the collections for the duration of one View or Update call.
// It must not be retained after the callback returns.
type Tx struct {
	Rooms        *Table[domain.Room]
	Guests       *Table[domain.Guest]
	Reservations *Table[domain.Reservation]
	Notes        *Table[domain.ReceptionNote]
	Products     *Table[domain.Product]
	Purchases    *Table[domain.Purchase]

	writable bool
	undo     []func()
}

func (s *Store) begin(writable bool) *Tx {
	tx := &Tx{writable: writable}
	tx.Rooms = &Table[domain.Room]{c: s.rooms, tx: tx}
	tx.Guests = &Table[domain.Guest]{c: s.guests, tx: tx}
	tx.Reservations = &Table[domain.Reservation]{c: s.reservations, tx: tx}
	tx.Notes = &Table[domain.ReceptionNote]{c: s.notes, tx: tx}
	tx.Products = &Table[domain.Product]{c: s.products, tx: tx}
	tx.Purchases = &Table[domain.Purchase]{c: s.purchases, tx: tx}
	return tx
}

func (tx *Tx) onRollback(fn func()) { tx.undo = append(tx.undo, fn) }

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// View runs fn under the read lock. Writes inside fn fail.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.begin(false))
}

// Update runs fn under the write lock. If fn returns an error or panics every
// write it made is undone before the lock is released, so readers never see
// a partial change.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.begin(true)
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			log.Error().Interface("panic", p).Msg("store transaction rolled back after panic")
			panic(p)
		}
		if err != nil && len(tx.undo) > 0 {
			tx.rollback()
			log.Debug().Err(err).Msg("store transaction rolled back")
		}
	}()

	return fn(tx)
}
