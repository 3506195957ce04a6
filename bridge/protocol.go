package bridge

import (
	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/preset"
	"github.com/cwbudde/algo-handsound/session"
)

// Client message types.
const (
	MsgFrame = "frame"
	MsgStart = "start"
	MsgStop  = "stop"
	MsgError = "error"
	MsgEnded = "ended"
)

// ClientMessage is anything the browser sends. T is the capture time of a
// frame in milliseconds; when absent the server clock is used. Tone is set on
// "ended" messages.
type ClientMessage struct {
	Type      string            `json:"type"`
	Subsystem session.Subsystem `json:"subsystem"`
	Hands     []hand.Hand       `json:"hands,omitempty"`
	T         *int64            `json:"t,omitempty"`
	Message   string            `json:"message,omitempty"`
	Tone      int               `json:"tone,omitempty"`
}

// Batch is the reply to one client message: the audio commands and statuses
// it produced, in order.
type Batch struct {
	Commands []Command        `json:"commands"`
	Statuses []session.Status `json:"statuses"`
}

// Profiles is the /api/profiles payload.
type Profiles struct {
	Instruments []instrument.Profile `json:"instruments"`
	Pads        []Pad                `json:"pads"`
}

// Pad describes one drum pad with its decay in seconds.
type Pad struct {
	ID           drum.PadID `json:"id"`
	Frequency    float64    `json:"frequency"`
	DecaySeconds float64    `json:"decay"`
}

func profilesOf(p *preset.Preset) Profiles {
	out := Profiles{Instruments: p.Catalog.Profiles()}
	for _, id := range drum.Pads() {
		pad := p.Kit[id]
		out.Pads = append(out.Pads, Pad{ID: id, Frequency: pad.Frequency, DecaySeconds: pad.Decay.Seconds()})
	}
	return out
}
