package localauth

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditPipeline moves events from engine operations to the sink through a
// fixed-size buffer serviced by one background goroutine, keeping sink
// latency out of an operation's critical path. The configured
// [AuditOverflow] policy decides what Emit does when the buffer is full.
type auditPipeline struct {
	sink     AuditSink
	overflow AuditOverflow

	ch      chan AuditEvent
	stop    chan struct{}
	stopped chan struct{}

	dropped   atomic.Uint64
	closeOnce sync.Once
}

// startAuditPipeline returns nil when audit is disabled; a nil pipeline
// accepts Emit calls and does nothing.
func startAuditPipeline(cfg AuditConfig, sink AuditSink) *auditPipeline {
	if !cfg.Enabled {
		return nil
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}

	p := &auditPipeline{
		sink:     sink,
		overflow: cfg.Overflow,
		ch:       make(chan AuditEvent, size),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go p.service()

	return p
}

func (p *auditPipeline) service() {
	defer close(p.stopped)

	for {
		select {
		case event := <-p.ch:
			p.sink.Emit(context.Background(), event)
		case <-p.stop:
			p.flush()
			return
		}
	}
}

// flush delivers whatever is still buffered at shutdown.
func (p *auditPipeline) flush() {
	for {
		select {
		case event := <-p.ch:
			p.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit hands an event to the pipeline. Under [OverflowDropNewest] a full
// buffer discards the event and counts the loss; under [OverflowBlock] the
// caller waits for buffer space, its context, or pipeline shutdown.
func (p *auditPipeline) Emit(ctx context.Context, event AuditEvent) {
	if p == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if p.overflow == OverflowBlock {
		select {
		case p.ch <- event:
		case <-ctx.Done():
		case <-p.stop:
		}
		return
	}

	select {
	case p.ch <- event:
	case <-p.stop:
	default:
		p.dropped.Add(1)
	}
}

// Dropped reports how many events the drop policy has discarded.
func (p *auditPipeline) Dropped() uint64 {
	if p == nil {
		return 0
	}
	return p.dropped.Load()
}

// Close stops intake, waits for the buffered backlog to reach the sink, and
// returns. Safe to call more than once.
func (p *auditPipeline) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.stop)
		<-p.stopped
	})
}
