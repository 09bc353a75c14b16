package game

// HouseConnID keys the synthetic house participant in a room's
// registries. It can never collide with a transport connection id,
// which are numeric.
const HouseConnID = "house"

// Participant is one connection's seat in a room. A participant is
// owned by exactly one room at a time; switching rooms requires leaving
// first, which frees the boards held here.
type Participant struct {
	ConnID  string
	UserID  int64
	Name    string
	Picks   []int
	Ready   bool
	IsHouse bool
}

// BoardCount returns how many boards the participant currently holds.
func (p *Participant) BoardCount() int {
	return len(p.Picks)
}

// Holds reports whether boardID is among the participant's picks.
func (p *Participant) Holds(boardID int) bool {
	for _, id := range p.Picks {
		if id == boardID {
			return true
		}
	}
	return false
}
