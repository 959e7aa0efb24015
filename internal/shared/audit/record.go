package audit

import "time"

// Record carries the creation/update timestamps and the soft-delete
// flag shared by all entities. Embedded by value; there is no entity
// base class.
type Record struct {
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewRecord returns an active record stamped with the current time.
func NewRecord() Record {
	now := time.Now().UTC()
	return Record{
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt. Called by every successful entity mutation.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// Deactivate is an idempotent no-op when already inactive.
func (r *Record) Deactivate() {
	if !r.IsActive {
		return
	}
	r.IsActive = false
	r.Touch()
}

// Reactivate is an idempotent no-op when already active.
func (r *Record) Reactivate() {
	if r.IsActive {
		return
	}
	r.IsActive = true
	r.Touch()
}
