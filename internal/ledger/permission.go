package ledger

import (
	"time"

	"autotrack-pos/internal/model"
)

// MutableWindow is how long a posted transaction stays editable and voidable
// for a non-admin. At exactly this elapsed time the transaction is locked.
const MutableWindow = 12 * time.Minute

// Modifiable is the permission state machine as a pure function of the
// clock: Open while elapsed < MutableWindow, Locked forever after. Admins
// bypass the lock entirely. There is no hidden polling; callers evaluate it
// whenever they need the current state.
func Modifiable(now, createdAt time.Time, role model.Role) bool {
	if role == model.RoleAdmin {
		return true
	}
	return now.Sub(createdAt) < MutableWindow
}

// CanModify reports whether the actor may edit or void the transaction right
// now. Repeated calls with the same clock and role return the same answer.
func (l *Ledger) CanModify(tx *model.Transaction, actor Actor) bool {
	return Modifiable(l.now(), tx.Timestamp, actor.Role)
}
