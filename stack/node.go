package stack

import (
	"sync/atomic"
	"unsafe"
)

// stackNil is used in stack to represent interface{}(nil).
// Since we use nil to represent empty slots, we need a sentinel value
// to represent nil.
type stackNil *struct{}

// node next->unsafe.Pointer
type node struct {
	p    interface{}
	next unsafe.Pointer
}

func newNode(i interface{}) *node {
	return &node{p: i}
}

func (n *node) load() interface{} {
	return n.p
}

// 释放node,必须已从top摘除。losers of the pop cas may still load
// next, so the clear is atomic.
func (n *node) free() {
	n.p = nil
	atomic.StorePointer(&n.next, nil)
}
