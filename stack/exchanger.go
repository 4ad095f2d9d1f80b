package stack

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const (
	offering uint32 = iota + 1
	busy
)

// slotItem one published exchange state. Every transition to OFFERING
// or BUSY installs a fresh slotItem, so a cas on the item pointer can
// never observe a recycled address.
type slotItem struct {
	state uint32
	p     interface{}
}

// exchanger a single rendezvous slot. item == nil is the EMPTY state.
type exchanger struct {
	item unsafe.Pointer // *slotItem
	_    cpu.CacheLinePad
}

// exchangePush publishes val on the slot and waits for a popper within
// the strategy's spin budget. It returns true if a popper took the
// value; on false the value stays with the caller.
func (e *exchanger) exchangePush(val interface{}, st Strategy) bool {
	if atomic.LoadPointer(&e.item) != nil {
		// slot occupied by another rendezvous
		return false
	}
	mine := unsafe.Pointer(&slotItem{state: offering, p: val})
	if !cas(&e.item, nil, mine) {
		return false
	}
	var pause spinner
	for i, n := 0, st.SpinBudget(); i < n; i++ {
		item := atomic.LoadPointer(&e.item)
		if item != mine {
			// a popper swapped in its BUSY marker and owns val
			e.clear(item)
			return true
		}
		pause.once()
	}
	// budget expired, withdraw the offer
	if cas(&e.item, mine, nil) {
		return false
	}
	// withdraw lost: a popper claimed the offer first
	e.clear(atomic.LoadPointer(&e.item))
	return true
}

// clear resets the slot to EMPTY. item is the BUSY marker installed by
// the claiming popper; only the matched pusher clears it.
func (e *exchanger) clear(item unsafe.Pointer) {
	cas(&e.item, item, nil)
}

// exchangePop claims a pending offer on the slot, or waits briefly for
// one to appear within the strategy's spin budget.
func (e *exchanger) exchangePop(st Strategy) (val interface{}, ok bool) {
	var pause spinner
	for i, n := 0, st.SpinBudget(); i < n; i++ {
		item := atomic.LoadPointer(&e.item)
		if item == nil {
			// no outstanding offer
			pause.once()
			continue
		}
		it := (*slotItem)(item)
		if it.state != offering {
			// rendezvous of two other operations in progress
			pause.once()
			continue
		}
		// capture val before claiming; the pusher frees the marker.
		val = it.p
		if cas(&e.item, item, unsafe.Pointer(&slotItem{state: busy})) {
			return val, true
		}
	}
	return nil, false
}
