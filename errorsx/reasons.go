package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	// ReasonModelCall covers network, auth, and timeout failures against
	// the model provider. Never retried automatically.
	ReasonModelCall ReasonCode = "model_call"

	// ReasonUnknownTool means a tool call named an unregistered capability.
	ReasonUnknownTool ReasonCode = "unknown_tool"

	// ReasonSchemaViolation means a required argument was missing or malformed.
	ReasonSchemaViolation ReasonCode = "schema_violation"

	// ReasonGeocode covers provider failures, empty candidate lists, and
	// malformed payloads from the geocoding service.
	ReasonGeocode ReasonCode = "geocode"

	// ReasonIterationLimit means the loop hit its cap without a terminal turn.
	ReasonIterationLimit ReasonCode = "iteration_limit"

	// ReasonSerialization means an outcome could not be encoded for transport.
	ReasonSerialization ReasonCode = "serialization"
)
