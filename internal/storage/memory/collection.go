package memory

import (
	"slices"

	"github.com/cockroachdb/errors"

	"front_desk/internal/domain"
)

var errReadOnly = errors.New("memory: write inside a read-only transaction")

// collection keeps entities by id plus their listing order.
type collection[T any] struct {
	name        string
	idOf        func(T) string
	newestFirst bool
	order       []string
	items       map[string]T
}

func newCollection[T any](name string, idOf func(T) string, newestFirst bool) *collection[T] {
	return &collection[T]{name: name, idOf: idOf, newestFirst: newestFirst, items: map[string]T{}}
}

func (c *collection[T]) indexOf(id string) int {
	return slices.Index(c.order, id)
}

func (c *collection[T]) insertAt(i int, v T) {
	id := c.idOf(v)
	c.items[id] = v
	c.order = slices.Insert(c.order, i, id)
}

func (c *collection[T]) delete(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	delete(c.items, id)
}

// Table is a collection seen through one transaction. Writes record an undo
// action so the transaction can be rolled back as a unit.
type Table[T any] struct {
	c  *collection[T]
	tx *Tx
}

func (t *Table[T]) Get(id string) (T, error) {
	v, ok := t.c.items[id]
	if !ok {
		var zero T
		return zero, domain.NotFoundf("%s %q", t.c.name, id)
	}
	return v, nil
}

func (t *Table[T]) Has(id string) bool {
	_, ok := t.c.items[id]
	return ok
}

func (t *Table[T]) Len() int { return len(t.c.order) }

// List returns entities in listing order, filtered by pred when non-nil.
func (t *Table[T]) List(pred func(T) bool) []T {
	out := make([]T, 0, len(t.c.order))
	for _, id := range t.c.order {
		v := t.c.items[id]
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *Table[T]) Insert(v T) error {
	if !t.tx.writable {
		return errReadOnly
	}
	id := t.c.idOf(v)
	if id == "" {
		return domain.Invalid("id", "id must not be empty")
	}
	if _, ok := t.c.items[id]; ok {
		return errors.Wrapf(domain.ErrDuplicateID, "%s %q", t.c.name, id)
	}
	at := len(t.c.order)
	if t.c.newestFirst {
		at = 0
	}
	t.c.insertAt(at, v)
	t.tx.onRollback(func() { t.c.delete(id) })
	return nil
}

// Remove deletes unconditionally; references held by other entities are left dangling.
func (t *Table[T]) Remove(id string) error {
	if !t.tx.writable {
		return errReadOnly
	}
	v, ok := t.c.items[id]
	if !ok {
		return domain.NotFoundf("%s %q", t.c.name, id)
	}
	at := t.c.indexOf(id)
	t.c.delete(id)
	t.tx.onRollback(func() { t.c.insertAt(at, v) })
	return nil
}

// Update applies patch to a copy of the stored entity. Fields the patch does
// not touch keep their values. The id cannot be changed.
func (t *Table[T]) Update(id string, patch func(*T)) (T, error) {
	var zero T
	if !t.tx.writable {
		return zero, errReadOnly
	}
	old, ok := t.c.items[id]
	if !ok {
		return zero, domain.NotFoundf("%s %q", t.c.name, id)
	}
	v := old
	patch(&v)
	if t.c.idOf(v) != id {
		return zero, domain.Invalid("id", "id is immutable")
	}
	t.c.items[id] = v
	t.tx.onRollback(func() { t.c.items[id] = old })
	return v, nil
}
