// Package selection provides a cursor over an ordered list of items.
package selection

// List is an ordered sequence of items with an optional cursor. The cursor is
// either unset or a valid index; an empty list never has a cursor.
type List[T any] struct {
	items  []T
	cursor int
	set    bool
}

// New returns a list over items with no cursor.
func New[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// View returns the items. Callers must not modify the returned slice.
func (l *List[T]) View() []T {
	return l.items
}

// Selected returns the cursor position, if any.
func (l *List[T]) Selected() (int, bool) {
	if !l.set {
		return 0, false
	}
	return l.cursor, true
}

func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	if !l.set {
		return zero, false
	}
	return l.items[l.cursor], true
}

// Next moves the cursor forward, wrapping from the last item to the first.
// An unset cursor moves to the first item.
func (l *List[T]) Next() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if !l.set {
		l.cursor, l.set = 0, true
		return
	}
	l.cursor = (l.cursor + 1) % n
}

// Previous moves the cursor backward, wrapping from the first item to the
// last. An unset cursor moves to the first item.
func (l *List[T]) Previous() {
	n := len(l.items)
	if n == 0 {
		return
	}
	if !l.set {
		l.cursor, l.set = 0, true
		return
	}
	l.cursor = (l.cursor + n - 1) % n
}

// Replace swaps in a fresh set of items. A set cursor stays on the item it
// pointed at when same finds it in items, preferring the old position;
// otherwise it is clamped to the new last index. same may be nil.
func (l *List[T]) Replace(items []T, same func(a, b T) bool) {
	if !l.set {
		l.items = items
		return
	}
	prev := l.items[l.cursor]
	oldIdx := l.cursor
	l.items = items
	if len(items) == 0 {
		l.cursor, l.set = 0, false
		return
	}
	if same != nil {
		if oldIdx < len(items) && same(items[oldIdx], prev) {
			return
		}
		for idx, item := range items {
			if same(item, prev) {
				l.cursor = idx
				return
			}
		}
	}
	l.cursor = min(oldIdx, len(items)-1)
}
