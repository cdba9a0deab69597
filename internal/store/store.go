// Package store implements the node-based backing store of the container.
//
// It is a generic doubly linked list in the spirit of the standard library's
// container/list, with a sentinel root node and lazy initialization. Node
// pointers are the stable location handles handed out to the position index:
// a node keeps its identity for as long as its element lives, no matter what
// happens to the rest of the list.
package store

import "iter"

// Node is an element of a List. The pointer identity of a Node is stable
// until the node is removed from its list.
type Node[T any] struct {
	next, prev *Node[T]
	list       *List[T]

	// Value is the element payload.
	Value T
}

// Next returns the next list node or nil.
func (n *Node[T]) Next() *Node[T] {
	if p := n.next; n.list != nil && p != &n.list.root {
		return p
	}
	return nil
}

// Prev returns the previous list node or nil.
func (n *Node[T]) Prev() *Node[T] {
	if p := n.prev; n.list != nil && p != &n.list.root {
		return p
	}
	return nil
}

// List is a doubly linked list of owned elements.
// The zero value is an empty list ready to use.
type List[T any] struct {
	root Node[T] // sentinel; root.next is the front, root.prev is the back
	len  int
}

// New returns an initialized empty list.
func New[T any]() *List[T] { return new(List[T]).Init() }

// Init initializes or clears the list.
func (l *List[T]) Init() *List[T] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.Init()
	}
}

// Len returns the number of elements in the list. O(1).
func (l *List[T]) Len() int { return l.len }

// Front returns the first node of the list or nil.
func (l *List[T]) Front() *Node[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the last node of the list or nil.
func (l *List[T]) Back() *Node[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// insert inserts n after at, increments l.len, and returns n.
func (l *List[T]) insert(n, at *Node[T]) *Node[T] {
	n.prev = at
	n.next = at.next
	n.prev.next = n
	n.next.prev = n
	n.list = l
	l.len++
	return n
}

// PushBack appends v at the tail of the list and returns the new node. O(1).
func (l *List[T]) PushBack(v T) *Node[T] {
	l.lazyInit()
	return l.insert(&Node[T]{Value: v}, l.root.prev)
}

// InsertBefore inserts v immediately before at and returns the new node.
// If at is nil, the value is appended at the tail. O(1).
func (l *List[T]) InsertBefore(v T, at *Node[T]) *Node[T] {
	l.lazyInit()
	if at == nil {
		return l.insert(&Node[T]{Value: v}, l.root.prev)
	}
	if at.list != l {
		panic("store: InsertBefore with node of a different list")
	}
	return l.insert(&Node[T]{Value: v}, at.prev)
}

// Remove unlinks n from the list and returns its value. O(1).
// The node must belong to this list.
func (l *List[T]) Remove(n *Node[T]) T {
	if n.list != l {
		panic("store: Remove with node of a different list")
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil // avoid memory leaks
	n.prev = nil
	n.list = nil
	l.len--
	return n.Value
}

// Nodes yields the nodes of the list front to back. The yielded nodes are
// live handles; removing the node most recently yielded (or any node after
// it) invalidates the remaining traversal.
func (l *List[T]) Nodes() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for n := l.Front(); n != nil; n = n.Next() {
			if !yield(n) {
				return
			}
		}
	}
}

// SortFunc sorts the list in place using a stable merge sort that relinks
// nodes instead of moving values between them, so node handles remain valid
// and keep denoting the same element after the sort. cmp must return a
// negative number when a sorts before b, as in slices.SortFunc.
func (l *List[T]) SortFunc(cmp func(a, b T) int) {
	if l.len < 2 {
		return
	}

	// Detach into a nil-terminated forward chain, sort, then restore the
	// prev links and the sentinel.
	head := l.root.next
	l.root.prev.next = nil
	head = mergeSort(head, cmp)

	prev := &l.root
	for n := head; n != nil; n = n.next {
		n.prev = prev
		prev.next = n
		prev = n
	}
	prev.next = &l.root
	l.root.prev = prev
}

// mergeSort sorts a nil-terminated chain linked through next. Stable.
func mergeSort[T any](head *Node[T], cmp func(a, b T) int) *Node[T] {
	if head == nil || head.next == nil {
		return head
	}

	// Split in the middle; slow ends up at the node before the second half.
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	mid := slow.next
	slow.next = nil

	left := mergeSort(head, cmp)
	right := mergeSort(mid, cmp)

	// Merge, preferring the left run on ties for stability.
	var root Node[T]
	tail := &root
	for left != nil && right != nil {
		if cmp(right.Value, left.Value) < 0 {
			tail.next = right
			right = right.next
		} else {
			tail.next = left
			left = left.next
		}
		tail = tail.next
	}
	if left != nil {
		tail.next = left
	} else {
		tail.next = right
	}
	return root.next
}
