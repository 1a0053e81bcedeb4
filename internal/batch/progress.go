package batch

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// Progress is the state of a Process call after a chunk completes.
type Progress struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
}

// PercentComplete returns completion as 0-100.
func (p Progress) PercentComplete() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return float64(p.ProcessedItems) / float64(p.TotalItems) * percentMultiplier
}

// IsComplete reports whether every item has been processed.
func (p Progress) IsComplete() bool {
	return p.ProcessedItems >= p.TotalItems
}
