package pv

// ProgressObserver receives batch progress events. The engine drives it
// from its sequential loop, so implementations need no locking. This keeps
// the engine free of any terminal UI concerns.
type ProgressObserver interface {
	Start(total int)
	FileDone(file MediaFile, outcome Outcome, stats *RunStats)
	Finish(stats *RunStats)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) Start(int)                             {}
func (NopObserver) FileDone(MediaFile, Outcome, *RunStats) {}
func (NopObserver) Finish(*RunStats)                      {}
