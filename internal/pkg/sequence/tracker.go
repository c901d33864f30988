// Package sequence orders overlapping fetches of the same list so that a
// response from an older request never overwrites a newer one.
package sequence

// Tracker is not safe for concurrent use; callers guard it with the same
// lock that protects the list it orders.
type Tracker struct {
	issued     uint64
	applied    uint64
	inflight   int
	refreshing int
}

// Begin registers a new fetch and returns its sequence number.
func (t *Tracker) Begin(refresh bool) uint64 {
	t.issued++
	t.inflight++
	if refresh {
		t.refreshing++
	}
	return t.issued
}

// End marks a fetch finished, whatever its outcome.
func (t *Tracker) End(refresh bool) {
	if t.inflight > 0 {
		t.inflight--
	}
	if refresh && t.refreshing > 0 {
		t.refreshing--
	}
}

// Accept reports whether the result of fetch seq may be applied, and records
// it as the latest applied result when it may.
func (t *Tracker) Accept(seq uint64) bool {
	if seq <= t.applied {
		return false
	}
	t.applied = seq
	return true
}

// Supersede marks every fetch issued so far as stale. It is used when the
// list is written by something other than a fetch.
func (t *Tracker) Supersede() {
	t.applied = t.issued
}

func (t *Tracker) Loading() bool {
	return t.inflight > 0
}

func (t *Tracker) Refreshing() bool {
	return t.refreshing > 0
}
