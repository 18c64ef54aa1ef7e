package models

import "time"

// Snapshot is a full export of the ledger collections. On import, a nil
// collection leaves the stored one untouched; a non-nil (possibly empty)
// collection replaces it wholesale.
type Snapshot struct {
	Members     []*Member     `json:"members"`
	Loans       []*Loan       `json:"loans"`
	Payments    []*Payment    `json:"payments"`
	Savings     []*Saving     `json:"savings"`
	Withdrawals []*Withdrawal `json:"withdrawals"`
	AuditLog    []*AuditLog   `json:"auditLog"`
	ExportedAt  time.Time     `json:"exportDate"`
}
