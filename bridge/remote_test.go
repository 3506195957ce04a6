package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/player"
	"github.com/cwbudde/algo-handsound/synth"
)

func TestRemoteQueuesCommandsInOrder(t *testing.T) {
	r := NewRemote()
	tn := r.CreateTone(synth.Sine, 440, 0.3)
	tn.RampFrequency(494, 50*time.Millisecond)
	tn.RampGain(0, 100*time.Millisecond)
	if err := tn.Stop(100 * time.Millisecond); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	cmds := r.Drain()
	want := []string{OpToneCreate, OpToneRampFrequency, OpToneRampGain, OpToneStop}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %+v", len(want), cmds)
	}
	for i, c := range cmds {
		if c.Op != want[i] || c.Tone != 1 {
			t.Fatalf("command %d: got=%+v want op=%s tone=1", i, c, want[i])
		}
	}
	if cmds[1].Target != 494 || cmds[1].Seconds != 0.05 {
		t.Fatalf("ramp mismatch: %+v", cmds[1])
	}
	if got := r.Drain(); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil drain, got %#v", got)
	}
}

func TestRemoteStopTwiceFails(t *testing.T) {
	r := NewRemote()
	tn := r.CreateTone(synth.Square, 220, 0.2)
	if err := tn.Stop(0); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := tn.Stop(0); !errors.Is(err, synth.ErrToneStopped) {
		t.Fatalf("second Stop: got=%v want=ErrToneStopped", err)
	}
	if r.Live() != 0 {
		t.Fatalf("expected no live tones, got %d", r.Live())
	}
}

func TestRemoteEndedByClient(t *testing.T) {
	r := NewRemote()
	tn := r.CreateTone(synth.Sine, 440, 0.3)
	r.Ended(1)
	if err := tn.Stop(0); !errors.Is(err, synth.ErrToneStopped) {
		t.Fatalf("expected ErrToneStopped after client end, got %v", err)
	}
}

func TestRemoteHitCarriesDecaySeconds(t *testing.T) {
	r := NewRemote()
	r.CreateHit(synth.Hit{Waveform: synth.Sine, Frequency: 60, Gain: 1, GainTarget: synth.ExpFloor, Decay: 500 * time.Millisecond})
	cmds := r.Drain()
	if len(cmds) != 1 || cmds[0].Op != OpHit || cmds[0].Hit == nil {
		t.Fatalf("unexpected hit commands: %+v", cmds)
	}
	if cmds[0].Hit.DecaySeconds != 0.5 || cmds[0].Hit.Frequency != 60 {
		t.Fatalf("hit mismatch: %+v", cmds[0].Hit)
	}
}

func TestRemoteExpRampFloors(t *testing.T) {
	r := NewRemote()
	r.CreateTone(synth.Sine, 440, 0.3).RampGainExponential(0, time.Second)
	cmds := r.Drain()
	if cmds[1].Target != synth.ExpFloor {
		t.Fatalf("expected floored target, got %f", cmds[1].Target)
	}
}

func TestRemoteDrivesVoice(t *testing.T) {
	r := NewRemote()
	v := player.NewVoice(r, nil)
	if _, err := v.Play(instrument.Piano, 0.1, 0.1); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := v.Play(instrument.Guitar, 0.9, 0.1); err != nil {
		t.Fatalf("Play: %v", err)
	}
	cmds := r.Drain()
	last := cmds[len(cmds)-1]
	if last.Op != OpToneCreate || last.Tone != 2 || last.Waveform != synth.Triangle {
		t.Fatalf("expected guitar tone 2, got %+v", last)
	}
	if r.Live() != 1 {
		t.Fatalf("expected exactly one live tone, got %d", r.Live())
	}
}

func TestRemoteEndedToneRestartsVoice(t *testing.T) {
	r := NewRemote()
	v := player.NewVoice(r, nil)
	if _, err := v.Play(instrument.Piano, 0.1, 0.1); err != nil {
		t.Fatalf("Play: %v", err)
	}
	r.Drain()
	r.Ended(1)
	if v.State() != player.Idle {
		t.Fatalf("ended tone must leave the voice idle, got %s", v.State())
	}

	for i := 0; i < 3; i++ {
		tr, err := v.Play(instrument.Piano, 0.2, 0.1)
		if err != nil {
			t.Fatalf("Play: %v", err)
		}
		want := player.Glided
		if i == 0 {
			want = player.Started
		}
		if tr != want {
			t.Fatalf("frame %d: got=%s want=%s", i, tr, want)
		}
	}
	cmds := r.Drain()
	if cmds[0].Op != OpToneCreate || cmds[0].Tone != 2 {
		t.Fatalf("expected a fresh tone after client end, got %+v", cmds[0])
	}
	for _, c := range cmds {
		if c.Tone == 1 {
			t.Fatalf("command sent to ended tone: %+v", c)
		}
	}
	if r.Live() != 1 {
		t.Fatalf("expected one live tone, got %d", r.Live())
	}
}
