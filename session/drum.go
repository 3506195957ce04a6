package session

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/synth"
)

// DrumHandler fires pad hits for every hand showing exactly one finger.
type DrumHandler struct {
	trigger *drum.Trigger
	clock   func() int64
	emit    Listener
	log     *zap.Logger
}

var _ Handler = (*DrumHandler)(nil)

// NewDrumHandler creates a handler sending hits to tones.
func NewDrumHandler(tones synth.ToneFactory, opts ...Option) *DrumHandler {
	o := buildOptions(opts)
	start := o.clock()
	h := &DrumHandler{
		trigger: drum.NewTrigger(tones, o.kit),
		clock:   func() int64 { return o.clock().Sub(start).Milliseconds() },
		emit:    o.listener,
		log:     o.logger.With(zap.String("subsystem", string(Drum))),
	}
	h.trigger.OnHit(h.onHit)
	return h
}

// OnFrame handles a frame stamped with the handler clock, in milliseconds
// since the handler was created.
func (h *DrumHandler) OnFrame(hands []hand.Hand) {
	h.OnFrameAt(hands, h.clock())
}

// OnFrameAt handles a frame captured at nowMillis.
func (h *DrumHandler) OnFrameAt(hands []hand.Hand, nowMillis int64) {
	if len(hands) == 0 {
		h.emit(Status{Subsystem: Drum, Text: DrumShowHandText})
		return
	}
	for _, hd := range hands {
		if hand.CountExtendedFingers(hd) != 1 {
			continue
		}
		tip := hd.IndexTip()
		pad := drum.Classify(tip.X, tip.Y)
		if !h.trigger.Trigger(pad, nowMillis) {
			h.log.Debug("hit debounced", zap.String("pad", string(pad)), zap.Int64("at", nowMillis))
		}
	}
	h.emit(Status{Subsystem: Drum, Text: DrumPlayingText})
}

func (h *DrumHandler) Start() {
	h.emit(Status{Subsystem: Drum, Text: DrumShowHandText})
}

func (h *DrumHandler) Stop() {
	h.emit(Status{Subsystem: Drum, Text: CameraStoppedText})
}

func (h *DrumHandler) Fail(err error) {
	h.log.Warn("tracking failed", zap.Error(err))
	h.emit(Status{Subsystem: Drum, Text: errorPrefix + err.Error()})
}

func (h *DrumHandler) onHit(e drum.Event) {
	h.log.Debug("hit", zap.String("pad", string(e.Pad)), zap.Int64("at", e.AtMillis))
	h.emit(Status{
		Subsystem:       Drum,
		Text:            DrumPlayingText,
		HighlightPad:    e.Pad,
		HighlightMillis: e.Highlight,
	})
}
