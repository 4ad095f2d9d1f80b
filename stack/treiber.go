package stack

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// outcome of a single tryPop attempt.
const (
	treiberOK = iota
	treiberEmpty
	treiberContended
)

// treiberStack a lock-free concurrent FILO stack over a singly linked
// list, linearized by cas on the top pointer.
type treiberStack struct {
	len uint32
	top unsafe.Pointer // point to the latest node pushed, nil when empty.
	_   cpu.CacheLinePad
}

// tryPush attempts a single cas installing slot as the new top.
// It returns false on cas failure and never blocks.
func (s *treiberStack) tryPush(slot *node) bool {
	top := atomic.LoadPointer(&s.top)
	slot.next = top
	if cas(&s.top, top, unsafe.Pointer(slot)) {
		atomic.AddUint32(&s.len, 1)
		return true
	}
	return false
}

// tryPop attempts a single cas detaching the top node.
// treiberEmpty means top was nil, treiberContended means the cas lost.
func (s *treiberStack) tryPop() (slot *node, stat int) {
	top := atomic.LoadPointer(&s.top)
	if top == nil {
		return nil, treiberEmpty
	}
	slot = (*node)(top)
	next := atomic.LoadPointer(&slot.next)
	if cas(&s.top, top, next) {
		atomic.AddUint32(&s.len, negativeOne)
		return slot, treiberOK
	}
	return nil, treiberContended
}

// init drains the stack and frees the chain.
func (s *treiberStack) init() {
	top := atomic.LoadPointer(&s.top)
	for top != nil {
		top = atomic.LoadPointer(&s.top)
		oldLen := atomic.LoadUint32(&s.len)
		if cas(&s.top, top, nil) {
			atomic.AddUint32(&s.len, (^oldLen + 1))
			break
		}
	}
	for top != nil {
		freeNode := (*node)(top)
		top = freeNode.next
		freeNode.free()
	}
}

// size stack element's number, an unsynchronized hint.
func (s *treiberStack) size() int {
	return int(atomic.LoadUint32(&s.len))
}

func (s *treiberStack) empty() bool {
	return atomic.LoadPointer(&s.top) == nil
}

const negativeOne = ^uint32(0) // -1

func cas(addr *unsafe.Pointer, old, new unsafe.Pointer) bool {
	return atomic.CompareAndSwapPointer(addr, old, new)
}
