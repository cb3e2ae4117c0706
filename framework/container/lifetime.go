package container

// Lifetime governs how often a registration's recipe is invoked.
type Lifetime int

const (
	// Transient invokes the recipe on every resolution.
	Transient Lifetime = iota
	// Singleton invokes the recipe at most once per container. The instance
	// lives in the root scope.
	Singleton
	// Scoped invokes the recipe at most once per scope.
	Scoped
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}

// cached reports whether instances of this lifetime are reused.
func (l Lifetime) cached() bool {
	return l == Singleton || l == Scoped
}
