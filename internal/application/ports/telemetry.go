package ports

// Telemetry records events and exceptions, fire and forget. Implementations
// must never fail the caller.
type Telemetry interface {
	RecordEvent(name string)
	RecordException(err error)
}
