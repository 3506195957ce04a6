// Package session turns per-frame hand detections into sound and status
// updates for the instrument player and the drum pad.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/instrument"
)

// Subsystem identifies which controller produced a status.
type Subsystem string

const (
	Player Subsystem = "player"
	Drum   Subsystem = "drum"
)

// Status texts shown to the user.
const (
	PlayerPlayingText  = "🎵 Playing! Move your hand to change notes"
	PlayerShowHandText = "Show your hand to the camera"
	PlayerStartedText  = "Camera started! Show your hand"
	DrumPlayingText    = "🎵 Playing! Move your finger over the pads"
	DrumShowHandText   = "✋ Show your hand to play drums"
	CameraStoppedText  = "Camera stopped"
	errorPrefix        = "Error: "
)

// Status is a presentation update. Player statuses carry the active zone;
// drum hit statuses carry the pad to light up and for how long.
type Status struct {
	Subsystem       Subsystem     `json:"subsystem"`
	Text            string        `json:"text"`
	ActiveZone      instrument.ID `json:"activeZone,omitempty"`
	ZoneName        string        `json:"zoneName,omitempty"`
	ZoneIcon        string        `json:"zoneIcon,omitempty"`
	HighlightPad    drum.PadID    `json:"highlightPad,omitempty"`
	HighlightMillis int64         `json:"highlightMillis,omitempty"`
}

// Listener receives statuses synchronously from the frame handler.
type Listener func(Status)

// Handler is the frame-driven controller of one subsystem. Calls must not
// overlap; each frame is handled to completion before the next.
type Handler interface {
	// OnFrame handles the hands detected in one video frame.
	OnFrame(hands []hand.Hand)
	// Start reports that tracking is running.
	Start()
	// Stop silences any sound and reports that tracking ended. It may be
	// called repeatedly.
	Stop()
	// Fail reports a tracking or camera failure.
	Fail(err error)
}

type options struct {
	logger   *zap.Logger
	listener Listener
	catalog  *instrument.Catalog
	kit      drum.Kit
	clock    func() time.Time
}

// Option configures a handler.
type Option func(*options)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithListener sets the status listener.
func WithListener(fn Listener) Option {
	return func(o *options) { o.listener = fn }
}

// WithCatalog overrides the instrument tables.
func WithCatalog(c *instrument.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithKit overrides the drum pad settings.
func WithKit(k drum.Kit) Option {
	return func(o *options) { o.kit = k }
}

// WithClock sets the time source used to debounce drum hits.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		listener: func(Status) {},
		catalog:  instrument.DefaultCatalog(),
		kit:      drum.DefaultKit(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
