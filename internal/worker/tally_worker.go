package worker

import (
	"context"
	"log/slog"

	"xpoll/internal/metrics"
)

// ResponseEvent is a hint that a response was accepted. Tallies are
// always derived from the store on read; the worker only observes
// traffic, so losing an event never skews a summary.
type ResponseEvent struct {
	PollID   int64
	ChoiceID int64
}

type TallyWorker struct {
	ch     <-chan ResponseEvent
	logger *slog.Logger
}

func NewTallyWorker(ch <-chan ResponseEvent, logger *slog.Logger) *TallyWorker {
	return &TallyWorker{ch: ch, logger: logger}
}

func (w *TallyWorker) Run(ctx context.Context) {
	w.logger.Info("tally worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("tally worker stopped")
			return
		case ev := <-w.ch:
			metrics.IncResponseRecorded()
			w.logger.Debug("response recorded", "poll_id", ev.PollID, "choice_id", ev.ChoiceID)
		}
	}
}
