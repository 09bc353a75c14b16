package game

import "math/rand"

// HousePolicy decides when the synthetic house participant enters a
// room and whether it plays to win. It is a strategy interface so the
// payout asymmetry (a house win retains all staked funds and credits
// no user) is an explicit, auditable policy rather than inline
// conditionals.
type HousePolicy interface {
	// ShouldJoin is consulted when the house is inactive. realBoards is
	// the board count across non-house participants, freeBoards the
	// unclaimed pool size.
	ShouldJoin(realBoards, freeBoards int) bool
	// ShouldLeave is consulted when the house is active.
	ShouldLeave(realBoards int) bool
	// BoardTarget is how many boards the house plays with.
	BoardTarget() int
	// ShouldWin marks the house to win via the lenient check when no
	// real claim lands first.
	ShouldWin() bool
}

// EquityPolicy keeps a room's real-money volume inside a band: below
// MinReal the house stays out (nothing to balance), above MaxReal it
// stays out (the room sustains itself). Inside the band it joins with
// Boards boards, flagged to win.
type EquityPolicy struct {
	MinReal int
	MaxReal int
	Boards  int
}

// DefaultHousePolicy mirrors the production band.
func DefaultHousePolicy() EquityPolicy {
	return EquityPolicy{MinReal: 2, MaxReal: 50, Boards: 10}
}

func (p EquityPolicy) ShouldJoin(realBoards, freeBoards int) bool {
	if realBoards < p.MinReal || realBoards > p.MaxReal {
		return false
	}
	return freeBoards >= p.Boards
}

func (p EquityPolicy) ShouldLeave(realBoards int) bool {
	return realBoards < p.MinReal || realBoards > p.MaxReal
}

func (p EquityPolicy) BoardTarget() int { return p.Boards }

func (p EquityPolicy) ShouldWin() bool { return true }

// houseState is the per-room synthetic participant bookkeeping.
type houseState struct {
	active      bool
	shouldWin   bool
	participant *Participant
}

// evaluateHouse runs the policy at the countdown checkpoints. Called
// only from the room goroutine.
func (r *Room) evaluateHouse() {
	real := r.realBoardCount()

	if r.house.active {
		if r.cfg.House.ShouldLeave(real) {
			r.removeHouse()
		}
		return
	}

	free := r.boards.Free()
	if !r.cfg.House.ShouldJoin(real, len(free)) {
		return
	}

	target := r.cfg.House.BoardTarget()
	picks := pickRandom(r.rng, free, target)
	hp := &Participant{ConnID: HouseConnID, Name: "house", IsHouse: true}
	r.boards.Claim(hp, picks, target)
	r.house = houseState{active: true, shouldWin: r.cfg.House.ShouldWin(), participant: hp}
	r.active[HouseConnID] = hp

	r.logger.Infow("house joined", "stake", r.stake, "boards", len(hp.Picks), "real_boards", real)
	r.broadcastBoards()
	r.broadcastPlayers()
}

// removeHouse returns the house's boards to the pool.
func (r *Room) removeHouse() {
	if !r.house.active {
		return
	}
	r.boards.Release(r.house.participant)
	delete(r.active, HouseConnID)
	r.house = houseState{}

	r.logger.Infow("house left", "stake", r.stake)
	r.broadcastBoards()
	r.broadcastPlayers()
}

// houseWinCheck runs the lenient verification over the house's picks.
func (r *Room) houseWinCheck() (WinResult, bool) {
	if !r.house.active || !r.house.shouldWin {
		return WinResult{}, false
	}
	for _, id := range r.house.participant.Picks {
		if res, ok := VerifyWin(id, r.called, false); ok {
			return res, true
		}
	}
	return WinResult{}, false
}

// pickRandom draws n distinct values from pool without reordering the
// caller's slice.
func pickRandom(rng *rand.Rand, pool []int, n int) []int {
	cp := append([]int(nil), pool...)
	rng.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}
