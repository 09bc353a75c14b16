package game

// Event is one outbound message from a room. The transport layer wraps
// it in an envelope carrying EventType as the "type" tag.
type Event interface {
	EventType() string
}

// Broadcaster is the sink for room events. Broadcast fans out to every
// connection on a stake tier; Notify targets a single connection.
// Implementations must not block the caller: the room goroutine invokes
// both inline.
type Broadcaster interface {
	Broadcast(stake int, ev Event)
	Notify(connID string, ev Event)
}

// PhaseEvent announces a phase transition.
type PhaseEvent struct {
	Stake int    `json:"stake"`
	Phase string `json:"phase"`
	Round int    `json:"round"`
}

func (PhaseEvent) EventType() string { return "phase" }

// CountdownEvent is emitted once per countdown second.
type CountdownEvent struct {
	Stake     int `json:"stake"`
	Seconds   int `json:"seconds"`
	Players   int `json:"players"`
	PrizePool int `json:"prize_pool"`
}

func (CountdownEvent) EventType() string { return "countdown" }

// CallEvent is one drawn number.
type CallEvent struct {
	Stake  int   `json:"stake"`
	Number int   `json:"number"`
	Called []int `json:"called"`
}

func (CallEvent) EventType() string { return "call" }

// BoardsEvent carries the authoritative taken-board set.
type BoardsEvent struct {
	Stake int   `json:"stake"`
	Taken []int `json:"taken"`
}

func (BoardsEvent) EventType() string { return "boards" }

// PlayersEvent carries the active participant count.
type PlayersEvent struct {
	Stake   int `json:"stake"`
	Players int `json:"players"`
	Waiting int `json:"waiting"`
}

func (PlayersEvent) EventType() string { return "players" }

// WinnerEvent announces a settlement. House wins carry House=true and
// no user id; no balance is credited for them.
type WinnerEvent struct {
	Stake       int    `json:"stake"`
	House       bool   `json:"house"`
	UserID      int64  `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Prize       int    `json:"prize"`
	BoardID     int    `json:"board_id"`
	LineIndices [5]int `json:"line_indices"`
	LineNumbers [5]int `json:"line_numbers"`
}

func (WinnerEvent) EventType() string { return "winner" }

// WaitingEvent tells a mid-round joiner they are queued for the next
// round.
type WaitingEvent struct {
	Stake int `json:"stake"`
}

func (WaitingEvent) EventType() string { return "waiting" }

// ClaimRejectedEvent answers an invalid bingo claim. Room state is
// unchanged by a rejection.
type ClaimRejectedEvent struct {
	Stake   int    `json:"stake"`
	BoardID int    `json:"board_id"`
	Reason  string `json:"reason"`
}

func (ClaimRejectedEvent) EventType() string { return "claim_rejected" }

// NoticeEvent is a free-form message to one connection.
type NoticeEvent struct {
	Message string `json:"message"`
}

func (NoticeEvent) EventType() string { return "notice" }

// Settlement summarizes a finished round for the hooks layer. A house
// win has House=true and Prize retained (nothing credited); a round
// that exhausted the deck with no winner has NoWinner=true.
type Settlement struct {
	Round    int
	House    bool
	NoWinner bool
	UserID   int64
	Name     string
	BoardID  int
	Prize    int
	Called   []int
}

// RoundHooks observes round lifecycle for persistence and stake
// accounting. Both calls happen on the room goroutine; implementations
// that touch slow storage should hand the work off.
type RoundHooks interface {
	RoundStarted(stake, round int, boardsByUser map[int64]int)
	RoundSettled(stake int, s Settlement)
}

// NopHooks is the default when no hooks are wired.
type NopHooks struct{}

func (NopHooks) RoundStarted(int, int, map[int64]int) {}
func (NopHooks) RoundSettled(int, Settlement)         {}
