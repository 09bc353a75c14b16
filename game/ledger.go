package game

import "sync"

// Ledger is the balance collaborator consumed by rooms. The room core
// only ever credits, and only on a real participant's win; house wins
// credit no one. Debits (stake collection) belong to the services
// layer.
type Ledger interface {
	Credit(userID int64, amount float64) error
	Balance(userID int64) (float64, error)
}

// MemoryLedger is an in-process Ledger. It backs tests and can serve
// as a stand-in when no database is configured.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[int64]float64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[int64]float64)}
}

func (l *MemoryLedger) Credit(userID int64, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] += amount
	return nil
}

func (l *MemoryLedger) Balance(userID int64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}
