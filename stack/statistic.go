package stack

import (
	"github.com/sirupsen/logrus"
)

// report summary of a flat event stream: operation counts and the
// longest push and pop by recorded milestones.
type report struct {
	operations  int
	pushes      int
	pops        int
	longestPush int
	longestPop  int
}

// buildReport splits events into operations at every StartPush and
// StartPop marker.
func buildReport(events []event) report {
	var r report
	var cur int
	var isPush bool

	flush := func() {
		if cur == 0 {
			return
		}
		r.operations++
		if isPush {
			r.pushes++
			if cur > r.longestPush {
				r.longestPush = cur
			}
		} else {
			r.pops++
			if cur > r.longestPop {
				r.longestPop = cur
			}
		}
		cur = 0
	}

	for _, e := range events {
		switch e {
		case evStartPush:
			flush()
			isPush = true
		case evStartPop:
			flush()
			isPush = false
		}
		cur++
	}
	flush()
	return r
}

// log emits the report as structured fields.
func (r report) log(l *logrus.Logger) {
	l.WithFields(logrus.Fields{
		"operations":   r.operations,
		"pushes":       r.pushes,
		"pops":         r.pops,
		"longest-push": r.longestPush,
		"longest-pop":  r.longestPop,
	}).Info("stack operation report")
}
