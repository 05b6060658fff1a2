package metrics

import "github.com/plus3/blockfall/sim"

// System samples scheduler timings into a Collector. Register it last so it
// sees the durations of every other system in the frame.
type System struct {
	Collector *Collector
	Scheduler *sim.Scheduler
}

func (s *System) Execute(frame *sim.UpdateFrame) {
	if s.Collector == nil || s.Scheduler == nil {
		return
	}
	s.Collector.ObserveScheduler(s.Scheduler.Stats())
}
