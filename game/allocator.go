package game

import "sort"

// BoardAllocator tracks which board ids are owned by which participant
// within one room. It is only ever touched by that room's own
// goroutine, so claim-then-check sequences need no locking.
type BoardAllocator struct {
	owners map[int]string // boardID -> connID
}

// NewBoardAllocator returns an empty allocator.
func NewBoardAllocator() *BoardAllocator {
	return &BoardAllocator{owners: make(map[int]string)}
}

// Claim replaces p's picks with the accepted subset of requested ids.
// Ids outside the board pool, duplicates, and boards owned by someone
// else are silently dropped rather than rejected: the client is
// expected to read back the authoritative allocation instead of
// trusting its optimistic request. At most limit ids are kept.
func (a *BoardAllocator) Claim(p *Participant, requested []int, limit int) []int {
	a.Release(p)

	accepted := make([]int, 0, limit)
	seen := make(map[int]bool, len(requested))
	for _, id := range requested {
		if len(accepted) >= limit {
			break
		}
		if !ValidBoardID(id) || seen[id] {
			continue
		}
		if _, taken := a.owners[id]; taken {
			continue
		}
		seen[id] = true
		a.owners[id] = p.ConnID
		accepted = append(accepted, id)
	}
	p.Picks = accepted
	return accepted
}

// Release frees all boards held by p.
func (a *BoardAllocator) Release(p *Participant) {
	for _, id := range p.Picks {
		if a.owners[id] == p.ConnID {
			delete(a.owners, id)
		}
	}
	p.Picks = nil
}

// Owner returns the connID holding boardID, if any.
func (a *BoardAllocator) Owner(boardID int) (string, bool) {
	owner, ok := a.owners[boardID]
	return owner, ok
}

// Taken returns the sorted set of owned board ids.
func (a *BoardAllocator) Taken() []int {
	out := make([]int, 0, len(a.owners))
	for id := range a.owners {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Free returns the sorted set of unowned board ids.
func (a *BoardAllocator) Free() []int {
	out := make([]int, 0, BoardCount-len(a.owners))
	for id := 1; id <= BoardCount; id++ {
		if _, taken := a.owners[id]; !taken {
			out = append(out, id)
		}
	}
	return out
}

// Reset drops all ownership at once. Participants' pick slices are the
// callers' responsibility; the room clears them during settlement.
func (a *BoardAllocator) Reset() {
	a.owners = make(map[int]string)
}
