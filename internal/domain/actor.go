package domain

// Actor is the authenticated caller resolved by the guard.
type Actor struct {
	ID       string
	Email    string
	Username string
	Role     Role
	Verified bool
}

// Authorize is the single capability check. An empty allow-list admits any
// authenticated actor.
func Authorize(actor Actor, allowed ...Role) error {
	if actor.ID == "" {
		return ErrTokenMissing()
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return ErrForbidden()
}
