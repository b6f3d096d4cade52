package height

// Height is the externally supplied counter used as the only notion of time.
// Nothing in this module samples a wall clock.
type Height uint64
