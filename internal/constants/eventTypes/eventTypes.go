package eventtypes

const (
	Introduced   = "introduced"
	Fixed        = "fixed"
	LastAffected = "last_affected"
	Limit        = "limit"
)

var EventTypes = []string{Introduced, Fixed, LastAffected, Limit}
