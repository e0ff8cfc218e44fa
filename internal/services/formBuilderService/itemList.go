package formbuilderservice

import "github.com/samber/lo"

type node[T any] struct {
	value    T
	attached bool
}

// list keeps repeatable items in insertion order.
type list[T any] struct {
	nodes []*node[T]
}

func (l *list[T]) append(value T) *node[T] {
	n := &node[T]{value: value, attached: true}
	l.nodes = append(l.nodes, n)
	return n
}

func (l *list[T]) detach(n *node[T]) bool {
	if n == nil || !n.attached {
		return false
	}

	n.attached = false
	l.nodes = lo.Without(l.nodes, n)
	return true
}

func (l *list[T]) values() []T {
	return lo.Map(l.nodes, func(n *node[T], _ int) T {
		return n.value
	})
}

func (l *list[T]) clear() {
	for _, n := range l.nodes {
		n.attached = false
	}
	l.nodes = nil
}

// handle is the teardown side of an item placed on the form.
type handle struct {
	form   *Form
	remove func() bool
}

// Remove detaches the item from its list and re-serializes the form.
// Removing an item twice does nothing.
func (h handle) Remove() {
	if h.remove() {
		h.form.changed()
	}
}

// attach instantiates an item, places it at the end of l and wires its
// teardown handle. Every nesting level goes through here.
func attach[T any](f *Form, l *list[T], build func(h handle) T) T {
	var n *node[T]
	h := handle{
		form: f,
		remove: func() bool {
			return l.detach(n)
		},
	}

	item := build(h)
	n = l.append(item)
	f.changed()

	return item
}
