package services

import "sync/atomic"

// LedgerVersion is a process-wide monotonic counter bumped on every
// mutation of members, loans, payments, savings or withdrawals. Derived
// results (risk assessments) are cached against the version they were
// computed at, so a cache entry is valid exactly until the ledger
// changes underneath it.
type LedgerVersion struct {
	v atomic.Uint64
}

// NewLedgerVersion creates a ledger version counter starting at 1
func NewLedgerVersion() *LedgerVersion {
	lv := &LedgerVersion{}
	lv.v.Store(1)
	return lv
}

// Current returns the current version
func (lv *LedgerVersion) Current() uint64 {
	return lv.v.Load()
}

// Bump advances the version and returns the new value
func (lv *LedgerVersion) Bump() uint64 {
	return lv.v.Add(1)
}
