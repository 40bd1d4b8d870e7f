package ir

// Version constants for trace records and the engine.
const (
	// TraceVersion is the trace record schema version.
	TraceVersion = "1"

	// EngineVersion is the knifehit engine version.
	EngineVersion = "0.3.0"
)
