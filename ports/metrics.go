package ports

// Metrics records pipeline activity
type Metrics interface {
	AuthAttempt(flow, outcome string)
	RequestSigned(signed bool)
	GateDecision(allowed bool)
}
