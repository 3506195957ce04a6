package session

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/player"
	"github.com/cwbudde/algo-handsound/synth"
)

// PlayerHandler drives the sustained instrument voice. Only the first hand of
// a frame is played.
type PlayerHandler struct {
	voice   *player.Voice
	catalog *instrument.Catalog
	emit    Listener
	log     *zap.Logger
}

var _ Handler = (*PlayerHandler)(nil)

// NewPlayerHandler creates a handler sending tones to tones.
func NewPlayerHandler(tones synth.ToneFactory, opts ...Option) *PlayerHandler {
	o := buildOptions(opts)
	return &PlayerHandler{
		voice:   player.NewVoice(tones, o.catalog),
		catalog: o.catalog,
		emit:    o.listener,
		log:     o.logger.With(zap.String("subsystem", string(Player))),
	}
}

// Voice exposes the underlying voice for inspection.
func (h *PlayerHandler) Voice() *player.Voice { return h.voice }

func (h *PlayerHandler) OnFrame(hands []hand.Hand) {
	if len(hands) == 0 {
		h.silence()
		h.emit(Status{Subsystem: Player, Text: PlayerShowHandText})
		return
	}

	tip := hands[0].IndexTip()
	id := instrument.Classify(tip.X, tip.Y)
	tr, err := h.voice.Play(id, tip.X, tip.Y)
	if err != nil {
		h.log.Error("play failed", zap.String("zone", string(id)), zap.Error(err))
		return
	}
	if tr != player.Glided {
		h.log.Debug("voice transition",
			zap.Stringer("transition", tr),
			zap.String("instrument", string(id)),
			zap.Float64("frequency", h.voice.Frequency()),
			zap.Float64("volume", h.voice.Volume()),
		)
	}

	p, _ := h.catalog.Lookup(id)
	h.emit(Status{
		Subsystem:  Player,
		Text:       PlayerPlayingText,
		ActiveZone: id,
		ZoneName:   p.Name,
		ZoneIcon:   p.Icon,
	})
}

func (h *PlayerHandler) Start() {
	h.emit(Status{Subsystem: Player, Text: PlayerStartedText})
}

func (h *PlayerHandler) Stop() {
	h.silence()
	h.emit(Status{Subsystem: Player, Text: CameraStoppedText})
}

func (h *PlayerHandler) Fail(err error) {
	h.silence()
	h.log.Warn("tracking failed", zap.Error(err))
	h.emit(Status{Subsystem: Player, Text: errorPrefix + err.Error()})
}

func (h *PlayerHandler) silence() {
	if h.voice.Stop() == player.Stopped {
		h.log.Debug("voice transition", zap.Stringer("transition", player.Stopped))
	}
}
