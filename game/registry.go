package game

import "sort"

// Registry owns the fixed stake-tier → room mapping. It is built once
// at startup and injected wherever rooms are needed; there are no
// package-level room globals.
type Registry struct {
	rooms map[int]*Room
}

// NewRegistry creates one room per stake. base supplies the shared
// collaborators and constants; Stake and Seed are set per room.
func NewRegistry(stakes []int, base RoomConfig) *Registry {
	reg := &Registry{rooms: make(map[int]*Room, len(stakes))}
	for _, stake := range stakes {
		cfg := base
		cfg.Stake = stake
		if base.Seed != 0 {
			cfg.Seed = base.Seed + int64(stake)
		}
		reg.rooms[stake] = NewRoom(cfg)
	}
	return reg
}

// StartAll launches every room's loop.
func (reg *Registry) StartAll() {
	for _, r := range reg.rooms {
		r.Start()
	}
}

// StopAll terminates every room.
func (reg *Registry) StopAll() {
	for _, r := range reg.rooms {
		r.Stop()
	}
}

// Room looks up the room for a stake tier.
func (reg *Registry) Room(stake int) (*Room, bool) {
	r, ok := reg.rooms[stake]
	return r, ok
}

// Stakes returns the supported tiers in ascending order.
func (reg *Registry) Stakes() []int {
	out := make([]int, 0, len(reg.rooms))
	for stake := range reg.rooms {
		out = append(out, stake)
	}
	sort.Ints(out)
	return out
}
