package game

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOwnsOneRoomPerStake(t *testing.T) {
	stakes := []int{10, 20, 50, 100, 200, 500}
	reg := NewRegistry(stakes, RoomConfig{
		Clock:       quartz.NewMock(t),
		Broadcaster: newRecordingSink(),
		House:       neverHouse{},
		Seed:        1,
	})
	reg.StartAll()
	defer reg.StopAll()

	assert.Equal(t, stakes, reg.Stakes())

	for _, stake := range stakes {
		room, ok := reg.Room(stake)
		require.True(t, ok)
		assert.Equal(t, stake, room.Stake())
		assert.Equal(t, "countdown", room.Snapshot().Phase)
	}

	_, ok := reg.Room(30)
	assert.False(t, ok, "unsupported tiers have no room")
}

func TestMemoryLedgerCredits(t *testing.T) {
	l := NewMemoryLedger()

	balance, err := l.Balance(1)
	require.NoError(t, err)
	assert.Zero(t, balance)

	require.NoError(t, l.Credit(1, 16))
	require.NoError(t, l.Credit(1, 4))
	balance, err = l.Balance(1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, balance)

	other, _ := l.Balance(2)
	assert.Zero(t, other)
}
