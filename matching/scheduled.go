package matching

import "cdaflow/controller"

// DepthGauge is the narrow interface ScheduledProcessor needs to report
// queue depth, satisfied by *metrics.Metrics's QueueDepth vector without
// matching importing the metrics package back.
type DepthGauge interface {
	Set(symbol string, depth float64)
}

// ScheduledProcessor wires a QueueProcessor to the controller gate for use
// as a repeating scheduler task.
type ScheduledProcessor struct {
	Processor  *QueueProcessor
	Controller *controller.Controller

	// OnBlocked, if set, is called once per tick that the controller is
	// not in Process state, instead of draining the queue. Orders remain
	// queued for the next Process tick.
	OnBlocked func(state controller.State)

	// Symbol and Depth, if Depth is set, report the queue's length at the
	// start of every tick, before it is drained.
	Symbol string
	Depth  DepthGauge
}

// NewScheduledProcessor builds a ScheduledProcessor.
func NewScheduledProcessor(p *QueueProcessor, ctl *controller.Controller) *ScheduledProcessor {
	return &ScheduledProcessor{Processor: p, Controller: ctl}
}

// AsyncQueueTask is the standing task body registered with the scheduler:
// each tick it checks the controller state, and only drains the queue
// (joining every spawned per-order worker before returning) while the
// engine is in Process mode.
func (s *ScheduledProcessor) AsyncQueueTask() {
	if s.Depth != nil {
		s.Depth.Set(s.Symbol, float64(s.Processor.Queue.Len()))
	}

	state := s.Controller.Get()
	if state != controller.Process {
		if s.OnBlocked != nil {
			s.OnBlocked(state)
		}
		return
	}
	s.Processor.ConcProcessOrderQueue()
}
