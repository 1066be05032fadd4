package domain

// CorpusState is the readiness state of the in-memory corpus.
// Transitions: Uninitialized -> Building -> Ready | Failed.
// A forced rebuild moves Ready or Failed back to Building.
type CorpusState int

const (
	// CorpusUninitialized means no build has started yet.
	CorpusUninitialized CorpusState = iota
	// CorpusBuilding means a build is in progress.
	CorpusBuilding
	// CorpusReady means a complete snapshot is being served.
	CorpusReady
	// CorpusFailed means the last build failed and no snapshot is usable.
	CorpusFailed
)

// String returns the state name for logs and health reporting.
func (s CorpusState) String() string {
	switch s {
	case CorpusUninitialized:
		return "uninitialized"
	case CorpusBuilding:
		return "building"
	case CorpusReady:
		return "ready"
	case CorpusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
