package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/coder/quartz"
	"go.uber.org/zap"
)

// Phase is a room's stage in its repeating cycle.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseCountdown
	PhaseCalling
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseCountdown:
		return "countdown"
	case PhaseCalling:
		return "calling"
	}
	return "unknown"
}

// validTransitions is the authoritative phase graph. Lobby is not a
// resting state: entering it is immediately followed by a fresh
// countdown.
var validTransitions = map[Phase][]Phase{
	PhaseLobby:     {PhaseCountdown},
	PhaseCountdown: {PhaseCalling, PhaseLobby},
	PhaseCalling:   {PhaseLobby},
}

// CallRange is the highest callable number.
const CallRange = 75

// RoomConfig carries a room's fixed constants and collaborators. Zero
// fields get production defaults from normalize.
type RoomConfig struct {
	Stake            int
	CountdownSeconds int           // default 60
	CallInterval     time.Duration // default 5s
	SettleDelay      time.Duration // delay before a forced house settlement, default 3s
	MaxPicks         int           // boards per real participant, default 2
	PayoutPercent    int           // share of the pot paid out, default 80

	House       HousePolicy
	Clock       quartz.Clock
	Broadcaster Broadcaster
	Ledger      Ledger
	Hooks       RoundHooks
	Logger      *zap.SugaredLogger

	// Seed fixes the room's RNG (deck shuffle, house picks). Zero means
	// time-seeded, as production wants.
	Seed int64
	// Deck overrides how a round's call order is drawn. The default is
	// a uniform shuffle of 1..75.
	Deck func(*rand.Rand) []int
}

func (cfg RoomConfig) normalize() RoomConfig {
	if cfg.CountdownSeconds == 0 {
		cfg.CountdownSeconds = 60
	}
	if cfg.CallInterval == 0 {
		cfg.CallInterval = 5 * time.Second
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 3 * time.Second
	}
	if cfg.MaxPicks == 0 {
		cfg.MaxPicks = 2
	}
	if cfg.PayoutPercent == 0 {
		cfg.PayoutPercent = 80
	}
	if cfg.House == nil {
		cfg.House = DefaultHousePolicy()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Ledger == nil {
		cfg.Ledger = NewMemoryLedger()
	}
	if cfg.Hooks == nil {
		cfg.Hooks = NopHooks{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Deck == nil {
		cfg.Deck = shuffledDeck
	}
	return cfg
}

func shuffledDeck(rng *rand.Rand) []int {
	nums := make([]int, CallRange)
	for i := range nums {
		nums[i] = i + 1
	}
	rng.Shuffle(len(nums), func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })
	return nums
}

// Room is a perpetual per-stake state machine. All mutable state is
// owned by one goroutine fed through the cmds mailbox; the two tickers
// are the only internal drivers of phase transitions. Public methods
// are safe from any goroutine.
type Room struct {
	stake  int
	cfg    RoomConfig
	clock  quartz.Clock
	rng    *rand.Rand
	logger *zap.SugaredLogger

	phase     Phase
	countdown int
	round     int
	called    []int
	deck      []int
	deckPos   int

	active  map[string]*Participant
	waiting map[string]*Participant
	boards  *BoardAllocator
	house   houseState

	cmds     chan func(*Room)
	done     chan struct{}
	stopOnce sync.Once

	countdownTicker *quartz.Ticker
	callTicker      *quartz.Ticker
}

// NewRoom builds a room; Start launches its goroutine.
func NewRoom(cfg RoomConfig) *Room {
	cfg = cfg.normalize()
	return &Room{
		stake:   cfg.Stake,
		cfg:     cfg,
		clock:   cfg.Clock,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		logger:  cfg.Logger,
		phase:   PhaseLobby,
		active:  make(map[string]*Participant),
		waiting: make(map[string]*Participant),
		boards:  NewBoardAllocator(),
		cmds:    make(chan func(*Room), 64),
		done:    make(chan struct{}),
	}
}

// Stake returns the room's entry fee.
func (r *Room) Stake() int { return r.stake }

// Start launches the room loop and its first countdown.
func (r *Room) Start() {
	go r.run()
}

// Stop terminates the room loop. Rooms are never stopped in production;
// this exists for shutdown and tests.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

func (r *Room) run() {
	r.enterCountdown()
	for {
		var countdownC, callC <-chan time.Time
		if r.countdownTicker != nil {
			countdownC = r.countdownTicker.C
		}
		if r.callTicker != nil {
			callC = r.callTicker.C
		}
		select {
		case <-r.done:
			r.stopTimers()
			return
		case cmd := <-r.cmds:
			cmd(r)
		case <-countdownC:
			r.tickCountdown()
		case <-callC:
			r.tickCall()
		}
	}
}

// do posts a command into the room mailbox. Events are processed in
// strict arrival order, one at a time.
func (r *Room) do(cmd func(*Room)) {
	select {
	case r.cmds <- cmd:
	case <-r.done:
	}
}

// -------------------- Inbound requests --------------------

// Join seats a connection in the room. Joining mid-call queues the
// participant for the next round instead.
func (r *Room) Join(connID string, userID int64, name string) {
	r.do(func(r *Room) { r.handleJoin(connID, userID, name) })
}

// SelectBoards replaces the participant's picks with the accepted
// subset of boardIDs. Conflicting or excess ids are silently dropped.
func (r *Room) SelectBoards(connID string, boardIDs []int) {
	ids := append([]int(nil), boardIDs...)
	r.do(func(r *Room) { r.handleSelect(connID, ids) })
}

// SetReady marks the participant ready for the next round.
func (r *Room) SetReady(connID string) {
	r.do(func(r *Room) { r.handleReady(connID) })
}

// ClaimWin checks a bingo claim in strict mode against the named
// board. Success settles the round immediately.
func (r *Room) ClaimWin(connID string, boardID int) {
	r.do(func(r *Room) { r.handleClaim(connID, boardID) })
}

// Leave removes the participant and frees their boards. Disconnects
// are routed here as well; the room's timers are unaffected.
func (r *Room) Leave(connID string) {
	r.do(func(r *Room) { r.handleLeave(connID) })
}

func (r *Room) handleJoin(connID string, userID int64, name string) {
	r.handleLeave(connID) // rejoin replaces any previous seat

	p := &Participant{ConnID: connID, UserID: userID, Name: name}
	if r.phase == PhaseCalling {
		r.waiting[connID] = p
		r.notify(connID, WaitingEvent{Stake: r.stake})
	} else {
		r.active[connID] = p
	}
	r.logger.Infow("participant joined", "stake", r.stake, "user", userID, "waiting", r.phase == PhaseCalling)

	r.notify(connID, PhaseEvent{Stake: r.stake, Phase: r.phase.String(), Round: r.round})
	r.notify(connID, BoardsEvent{Stake: r.stake, Taken: r.boards.Taken()})
	r.broadcastPlayers()
}

func (r *Room) handleSelect(connID string, boardIDs []int) {
	if r.phase == PhaseCalling {
		return
	}
	p, ok := r.active[connID]
	if !ok || p.IsHouse {
		return
	}
	accepted := r.boards.Claim(p, boardIDs, r.cfg.MaxPicks)
	r.logger.Debugw("boards selected", "stake", r.stake, "user", p.UserID, "accepted", accepted)
	r.broadcastBoards()
	r.broadcastCountdown()
}

func (r *Room) handleReady(connID string) {
	if p, ok := r.active[connID]; ok {
		p.Ready = true
	}
}

func (r *Room) handleClaim(connID string, boardID int) {
	if r.phase != PhaseCalling {
		r.notify(connID, ClaimRejectedEvent{Stake: r.stake, BoardID: boardID, Reason: "no round in progress"})
		return
	}
	p, ok := r.active[connID]
	if !ok || p.IsHouse || !p.Holds(boardID) {
		r.notify(connID, ClaimRejectedEvent{Stake: r.stake, BoardID: boardID, Reason: "board not held"})
		return
	}
	res, won := VerifyWin(boardID, r.called, true)
	if !won {
		r.notify(connID, ClaimRejectedEvent{Stake: r.stake, BoardID: boardID, Reason: "no winning line on the last call"})
		return
	}
	r.settleReal(p, res)
}

func (r *Room) handleLeave(connID string) {
	if p, ok := r.active[connID]; ok {
		r.boards.Release(p)
		delete(r.active, connID)
		r.broadcastBoards()
		r.broadcastPlayers()
		return
	}
	if _, ok := r.waiting[connID]; ok {
		delete(r.waiting, connID)
		r.broadcastPlayers()
	}
}

// -------------------- Timers --------------------

func (r *Room) tickCountdown() {
	if r.phase != PhaseCountdown {
		return
	}
	r.countdown--

	// House checkpoints: every multiple of 10 seconds remaining above
	// five, and exactly at five.
	if (r.countdown > 5 && r.countdown%10 == 0) || r.countdown == 5 {
		r.evaluateHouse()
	}

	r.broadcastCountdown()

	if r.countdown > 0 {
		return
	}
	r.stopCountdownTicker()
	if r.totalBoardCount() > 0 {
		r.enterCalling()
		return
	}
	// Nobody staked: back to lobby and straight into a fresh countdown.
	r.transition(PhaseLobby)
	r.enterCountdown()
}

func (r *Room) tickCall() {
	if r.phase != PhaseCalling {
		return
	}
	if r.deckPos >= len(r.deck) {
		r.finishExhaustedDeck()
		return
	}
	n := r.deck[r.deckPos]
	r.deckPos++
	r.called = append(r.called, n)
	r.broadcast(CallEvent{Stake: r.stake, Number: n, Called: append([]int(nil), r.called...)})

	if res, ok := r.houseWinCheck(); ok {
		r.scheduleHouseSettle(res)
	}
}

func (r *Room) finishExhaustedDeck() {
	r.stopCallTicker()
	if res, ok := r.houseWinCheck(); ok {
		r.scheduleHouseSettle(res)
		return
	}
	r.logger.Infow("deck exhausted, no winner", "stake", r.stake, "round", r.round)
	r.cfg.Hooks.RoundSettled(r.stake, Settlement{
		Round:    r.round,
		NoWinner: true,
		Called:   append([]int(nil), r.called...),
	})
	r.resetRound()
	r.enterCountdown()
}

// -------------------- Transitions --------------------

func (r *Room) transition(to Phase) {
	allowed := false
	for _, next := range validTransitions[r.phase] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		r.logger.Errorw("illegal phase transition", "stake", r.stake, "from", r.phase.String(), "to", to.String())
		return
	}
	r.phase = to
	r.broadcast(PhaseEvent{Stake: r.stake, Phase: to.String(), Round: r.round})
}

func (r *Room) enterCountdown() {
	r.called = nil
	r.deck = nil
	r.deckPos = 0
	r.countdown = r.cfg.CountdownSeconds
	r.transition(PhaseCountdown)
	r.broadcastCountdown()
	r.countdownTicker = r.clock.NewTicker(time.Second, "countdown")
}

func (r *Room) enterCalling() {
	r.round++
	r.transition(PhaseCalling)
	r.deck = r.cfg.Deck(r.rng)
	r.deckPos = 0

	boardsByUser := make(map[int64]int)
	for _, p := range r.active {
		if !p.IsHouse && p.BoardCount() > 0 {
			boardsByUser[p.UserID] = p.BoardCount()
		}
	}
	r.cfg.Hooks.RoundStarted(r.stake, r.round, boardsByUser)
	r.logger.Infow("round started", "stake", r.stake, "round", r.round, "staked_users", len(boardsByUser))

	r.callTicker = r.clock.NewTicker(r.cfg.CallInterval, "call")
}

// scheduleHouseSettle arms the delayed forced settlement. A real claim
// landing inside the delay still wins: settleReal bumps past the
// captured round, so the stale callback is dropped.
func (r *Room) scheduleHouseSettle(res WinResult) {
	r.stopCallTicker()
	round := r.round
	r.clock.AfterFunc(r.cfg.SettleDelay, func() {
		r.do(func(r *Room) { r.settleHouse(res, round) })
	}, "house-settle")
}

func (r *Room) settleHouse(res WinResult, round int) {
	if r.phase != PhaseCalling || r.round != round {
		return
	}
	prize := r.prizePool()
	r.logger.Infow("house settlement", "stake", r.stake, "round", r.round, "board", res.BoardID, "retained", prize)

	// No balance is credited on a house win: the round's staked funds
	// are retained.
	r.broadcast(WinnerEvent{
		Stake:       r.stake,
		House:       true,
		Name:        "house",
		Prize:       prize,
		BoardID:     res.BoardID,
		LineIndices: res.LineIndices,
		LineNumbers: res.LineNumbers,
	})
	r.cfg.Hooks.RoundSettled(r.stake, Settlement{
		Round:   r.round,
		House:   true,
		Name:    "house",
		BoardID: res.BoardID,
		Prize:   prize,
		Called:  append([]int(nil), r.called...),
	})
	r.resetRound()
	r.enterCountdown()
}

func (r *Room) settleReal(p *Participant, res WinResult) {
	prize := r.prizePool()
	if err := r.cfg.Ledger.Credit(p.UserID, float64(prize)); err != nil {
		r.logger.Errorw("failed to credit winner", "stake", r.stake, "user", p.UserID, "prize", prize, "error", err)
	}
	r.logger.Infow("bingo", "stake", r.stake, "round", r.round, "user", p.UserID, "board", res.BoardID, "prize", prize)

	r.broadcast(WinnerEvent{
		Stake:       r.stake,
		UserID:      p.UserID,
		Name:        p.Name,
		Prize:       prize,
		BoardID:     res.BoardID,
		LineIndices: res.LineIndices,
		LineNumbers: res.LineNumbers,
	})
	r.cfg.Hooks.RoundSettled(r.stake, Settlement{
		Round:   r.round,
		UserID:  p.UserID,
		Name:    p.Name,
		BoardID: res.BoardID,
		Prize:   prize,
		Called:  append([]int(nil), r.called...),
	})
	r.resetRound()
	r.enterCountdown()
}

// resetRound returns the room to the lobby marker: timers stopped,
// boards freed, house cleared, waiting participants promoted with
// clean picks.
func (r *Room) resetRound() {
	r.stopTimers()
	delete(r.active, HouseConnID)
	r.house = houseState{}
	r.boards.Reset()
	for _, p := range r.active {
		p.Picks = nil
		p.Ready = false
	}
	for id, p := range r.waiting {
		p.Picks = nil
		p.Ready = false
		r.active[id] = p
		delete(r.waiting, id)
	}
	r.transition(PhaseLobby)
	r.broadcastBoards()
	r.broadcastPlayers()
}

func (r *Room) stopCountdownTicker() {
	if r.countdownTicker != nil {
		r.countdownTicker.Stop()
		r.countdownTicker = nil
	}
}

func (r *Room) stopCallTicker() {
	if r.callTicker != nil {
		r.callTicker.Stop()
		r.callTicker = nil
	}
}

func (r *Room) stopTimers() {
	r.stopCountdownTicker()
	r.stopCallTicker()
}

// -------------------- Derived state --------------------

func (r *Room) realBoardCount() int {
	total := 0
	for _, p := range r.active {
		if !p.IsHouse {
			total += p.BoardCount()
		}
	}
	return total
}

func (r *Room) totalBoardCount() int {
	total := 0
	for _, p := range r.active {
		total += p.BoardCount()
	}
	return total
}

func (r *Room) realPlayerCount() int {
	count := 0
	for _, p := range r.active {
		if !p.IsHouse {
			count++
		}
	}
	return count
}

// prizePool is the payout share of the real participants' stakes. The
// house pays nothing in, so its boards never inflate the pot.
func (r *Room) prizePool() int {
	return r.realBoardCount() * r.stake * r.cfg.PayoutPercent / 100
}

// -------------------- Broadcast helpers --------------------

func (r *Room) broadcast(ev Event) {
	if r.cfg.Broadcaster != nil {
		r.cfg.Broadcaster.Broadcast(r.stake, ev)
	}
}

func (r *Room) notify(connID string, ev Event) {
	if r.cfg.Broadcaster != nil {
		r.cfg.Broadcaster.Notify(connID, ev)
	}
}

func (r *Room) broadcastCountdown() {
	if r.phase != PhaseCountdown {
		return
	}
	r.broadcast(CountdownEvent{
		Stake:     r.stake,
		Seconds:   r.countdown,
		Players:   r.realPlayerCount(),
		PrizePool: r.prizePool(),
	})
}

func (r *Room) broadcastBoards() {
	r.broadcast(BoardsEvent{Stake: r.stake, Taken: r.boards.Taken()})
}

func (r *Room) broadcastPlayers() {
	r.broadcast(PlayersEvent{Stake: r.stake, Players: r.realPlayerCount(), Waiting: len(r.waiting)})
}

// -------------------- Snapshot --------------------

// Snapshot is a consistent copy of the room's public state, taken on
// the room goroutine.
type Snapshot struct {
	Stake       int    `json:"stake"`
	Phase       string `json:"phase"`
	Countdown   int    `json:"countdown"`
	Round       int    `json:"round"`
	Called      []int  `json:"called"`
	TakenBoards []int  `json:"taken_boards"`
	Players     int    `json:"players"`
	Waiting     int    `json:"waiting"`
	PrizePool   int    `json:"prize_pool"`
	HouseActive bool   `json:"house_active"`
}

// Snapshot round-trips the mailbox, so it also serves as a fence: all
// previously submitted requests are reflected in the result.
func (r *Room) Snapshot() Snapshot {
	reply := make(chan Snapshot, 1)
	r.do(func(r *Room) {
		reply <- Snapshot{
			Stake:       r.stake,
			Phase:       r.phase.String(),
			Countdown:   r.countdown,
			Round:       r.round,
			Called:      append([]int(nil), r.called...),
			TakenBoards: r.boards.Taken(),
			Players:     r.realPlayerCount(),
			Waiting:     len(r.waiting),
			PrizePool:   r.prizePool(),
			HouseActive: r.house.active,
		}
	})
	select {
	case s := <-reply:
		return s
	case <-r.done:
		return Snapshot{Stake: r.stake, Phase: r.phase.String()}
	}
}
