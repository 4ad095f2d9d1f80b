package stack

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Stack interface
type Stack interface {
	// Push adds val at the top of the Stack.
	Push(val interface{})

	// Pop removes and returns the value at the top of the Stack.
	// It returns false if the Stack is empty.
	Pop() (val interface{}, ok bool)
}

// EBStack a lock-free concurrent FILO stack with elimination back-off.
// Operations go through the Treiber top pointer; under contention a
// push and a pop may instead cancel each other on the elimination
// array. The zero value is an empty stack ready to use.
type EBStack struct {
	once sync.Once

	stack treiberStack
	elim  *eliminationArray

	// newStrategy builds the per-operation back-off state.
	newStrategy func() Strategy
}

// Option configures an EBStack.
type Option func(*EBStack) error

// WithArraySize sets the elimination array size.
func WithArraySize(size int) Option {
	return func(s *EBStack) error {
		if size < 1 {
			return errors.Errorf("stack: array size %d, want >= 1", size)
		}
		s.elim = newEliminationArray(size)
		return nil
	}
}

// WithStrategy sets the back-off strategy constructor, called once per
// operation.
func WithStrategy(newStrategy func() Strategy) Option {
	return func(s *EBStack) error {
		if newStrategy == nil {
			return errors.New("stack: nil strategy constructor")
		}
		s.newStrategy = newStrategy
		return nil
	}
}

// New returns an empty EBStack with default options: an elimination
// array sized to the CPU count rounded up to a power of two, and the
// exponential back-off strategy.
func New() *EBStack {
	s := &EBStack{}
	s.onceInit()
	return s
}

// NewWith returns an empty EBStack configured by opts.
func NewWith(opts ...Option) (*EBStack, error) {
	s := &EBStack{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.onceInit()
	return s, nil
}

// 一次性初始化,零值可用
func (s *EBStack) onceInit() {
	s.once.Do(func() {
		if s.elim == nil {
			s.elim = newEliminationArray(defaultArraySize())
		}
		if s.newStrategy == nil {
			s.newStrategy = NewExpBackoff
		}
	})
}

// defaultArraySize the CPU count rounded up to a power of two.
func defaultArraySize() int {
	size := 1
	for size < runtime.NumCPU() {
		size <<= 1
	}
	return size
}

// Push puts the given value at the top of the stack.
func (s *EBStack) Push(val interface{}) {
	s.instrumentedPush(val, noopRecorder{})
}

func (s *EBStack) instrumentedPush(val interface{}, rec recorder) {
	rec.record(evStartPush)
	s.onceInit()
	if val == nil {
		val = stackNil(nil)
	}
	slot := newNode(val)
	st := s.newStrategy()
	rnd := newRandState()
	for {
		rec.record(evTryStack)
		if s.stack.tryPush(slot) {
			break
		}
		if st.UseElimination() {
			rec.record(evTryEliminationArray)
			rec.record(evStartExchangerPush)
			if s.elim.exchangePush(val, st, &rnd) {
				// val handed off through the slot, the node is unused
				slot.free()
				break
			}
			st.OnAborted()
		}
	}
	rec.record(evFinishPush)
}

// Pop removes and returns the value at the top of the stack.
// It returns false if the stack is empty.
func (s *EBStack) Pop() (val interface{}, ok bool) {
	return s.instrumentedPop(noopRecorder{})
}

func (s *EBStack) instrumentedPop(rec recorder) (val interface{}, ok bool) {
	rec.record(evStartPop)
	s.onceInit()
	st := s.newStrategy()
	rnd := newRandState()
	for {
		rec.record(evTryStack)
		slot, stat := s.stack.tryPop()
		switch stat {
		case treiberOK:
			val = slot.load()
			slot.free()
			rec.record(evFinishPop)
			return unwrap(val), true
		case treiberEmpty:
			rec.record(evFinishPop)
			return nil, false
		}
		if st.UseElimination() {
			rec.record(evTryEliminationArray)
			rec.record(evStartExchangerPop)
			if val, ok := s.elim.exchangePop(st, &rnd); ok {
				rec.record(evFinishPop)
				return unwrap(val), true
			}
			st.OnAborted()
		}
	}
}

func unwrap(val interface{}) interface{} {
	if val == stackNil(nil) {
		return nil
	}
	return val
}

// Init drains the stack. Values in flight on the elimination array are
// untouched; their rendezvous complete or abort as usual.
func (s *EBStack) Init() {
	s.onceInit()
	s.stack.init()
}

// Size stack element's number, an unsynchronized hint. Eliminated
// pairs cancel and never count.
func (s *EBStack) Size() int {
	return s.stack.size()
}

// Empty reports whether the top pointer is nil.
func (s *EBStack) Empty() bool {
	return s.stack.empty()
}

// ArraySize the elimination array size.
func (s *EBStack) ArraySize() int {
	s.onceInit()
	return s.elim.size()
}
