package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimAcceptsValidPicks(t *testing.T) {
	a := NewBoardAllocator()
	p := &Participant{ConnID: "a"}

	accepted := a.Claim(p, []int{5, 9}, 2)
	assert.Equal(t, []int{5, 9}, accepted)
	assert.Equal(t, []int{5, 9}, p.Picks)
	assert.Equal(t, []int{5, 9}, a.Taken())
}

func TestClaimFiltersConflictsSilently(t *testing.T) {
	a := NewBoardAllocator()
	alice := &Participant{ConnID: "alice"}
	bob := &Participant{ConnID: "bob"}

	a.Claim(alice, []int{7}, 2)

	// Bob asks for the contested board plus a free one: the conflict is
	// dropped, not erred.
	accepted := a.Claim(bob, []int{7, 11}, 2)
	assert.Equal(t, []int{11}, accepted)

	owner, ok := a.Owner(7)
	require.True(t, ok)
	assert.Equal(t, "alice", owner)
}

func TestClaimDeduplicatesAndTruncates(t *testing.T) {
	a := NewBoardAllocator()
	p := &Participant{ConnID: "a"}

	accepted := a.Claim(p, []int{3, 3, 4, 5, 6}, 2)
	assert.Equal(t, []int{3, 4}, accepted)
}

func TestClaimRejectsOutOfRangeIDs(t *testing.T) {
	a := NewBoardAllocator()
	p := &Participant{ConnID: "a"}

	accepted := a.Claim(p, []int{0, -1, 101, 42}, 2)
	assert.Equal(t, []int{42}, accepted)
}

func TestClaimReplacesPreviousPicks(t *testing.T) {
	a := NewBoardAllocator()
	alice := &Participant{ConnID: "alice"}
	bob := &Participant{ConnID: "bob"}

	a.Claim(alice, []int{1, 2}, 2)
	a.Claim(alice, []int{2, 3}, 2)
	assert.Equal(t, []int{2, 3}, alice.Picks)
	assert.Equal(t, []int{2, 3}, a.Taken())

	// The old pick is free again.
	accepted := a.Claim(bob, []int{1}, 2)
	assert.Equal(t, []int{1}, accepted)
}

func TestReleaseFreesAllPicks(t *testing.T) {
	a := NewBoardAllocator()
	p := &Participant{ConnID: "a"}

	a.Claim(p, []int{10, 20}, 2)
	a.Release(p)
	assert.Empty(t, p.Picks)
	assert.Empty(t, a.Taken())
	assert.Len(t, a.Free(), BoardCount)
}

func TestTakenMatchesUnionOfPicks(t *testing.T) {
	a := NewBoardAllocator()
	participants := []*Participant{
		{ConnID: "a"}, {ConnID: "b"}, {ConnID: "c"},
	}
	a.Claim(participants[0], []int{1, 2}, 2)
	a.Claim(participants[1], []int{3}, 2)
	a.Claim(participants[2], []int{2, 4}, 2) // 2 conflicts, dropped

	union := make(map[int]string)
	for _, p := range participants {
		for _, id := range p.Picks {
			_, dup := union[id]
			require.False(t, dup, "board %d owned twice", id)
			union[id] = p.ConnID
		}
	}
	taken := a.Taken()
	assert.Len(t, taken, len(union))
	for _, id := range taken {
		owner, ok := a.Owner(id)
		require.True(t, ok)
		assert.Equal(t, union[id], owner)
	}
}
