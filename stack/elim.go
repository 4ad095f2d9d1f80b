package stack

// eliminationArray a fixed-size array of independent rendezvous slots.
// Slots are cache-line padded so neighbouring rendezvous do not share
// a line.
type eliminationArray struct {
	slots []exchanger
}

func newEliminationArray(size int) *eliminationArray {
	return &eliminationArray{slots: make([]exchanger, size)}
}

func (a *eliminationArray) size() int {
	return len(a.slots)
}

// exchangePush offers val on one slot chosen uniformly from the
// strategy's current range.
func (a *eliminationArray) exchangePush(val interface{}, st Strategy, rnd *randState) bool {
	i := rnd.next(uint32(st.Range(len(a.slots))))
	return a.slots[i].exchangePush(val, st)
}

// exchangePop seeks an offer on one slot chosen uniformly from the
// strategy's current range.
func (a *eliminationArray) exchangePop(st Strategy, rnd *randState) (interface{}, bool) {
	i := rnd.next(uint32(st.Range(len(a.slots))))
	return a.slots[i].exchangePop(st)
}
