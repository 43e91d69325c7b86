package session

// CanEnter is the route guard for protected views: it admits a snapshot
// only when the session is authenticated. The caller performs the
// redirect to the login view; the guard itself has no side effects.
func CanEnter(s Snapshot) bool {
	return s.IsAuthenticated()
}
