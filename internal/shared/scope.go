package shared

// Scope describes the visibility granted to a request. Admins see every
// record, regular users only their own. Services receive the scope
// explicitly; nothing below the handlers inspects session state.
type Scope struct {
	UserID  int64
	IsAdmin bool
}

// CanSee reports whether a record owned by ownerID is visible.
func (s Scope) CanSee(ownerID int64) bool {
	return s.IsAdmin || s.UserID == ownerID
}
