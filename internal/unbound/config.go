package unbound

// Config controls the unbound-method analysis.
type Config struct {
	// IgnoreStatic отключает диагностику для статических методов класса.
	IgnoreStatic bool
}
