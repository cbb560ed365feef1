package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod = "method"
	AttrPath   = "path"
	AttrStatus = "status"
	AttrSource = "source"
	AttrDomain = "domain"
	AttrAction = "action"
)

// Boundary check outcomes recorded by RecordBoundaryCheck.
const (
	ActionExpired  = "expired"
	ActionPromoted = "promoted"
	ActionNoop     = "noop"
)
