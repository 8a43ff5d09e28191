package domain

// RequireRole is the single authorization combinator used by the HTTP guard
// and by every mutating service call. A nil principal is unauthenticated,
// which always takes precedence over a role mismatch.
func RequireRole(p *Principal, allowed ...Role) error {
	if p == nil || p.ID == "" || !p.Role.Valid() {
		return ErrUnauthenticated
	}
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
