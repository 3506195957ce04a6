package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-handsound/analysis"
	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/internal/wavio"
	"github.com/cwbudde/algo-handsound/player"
	"github.com/cwbudde/algo-handsound/preset"
	"github.com/cwbudde/algo-handsound/synth"
)

const (
	// auditionHeight is the hand height used for sweeps; it plays at 0.4 gain.
	auditionHeight = 0.6
	stepDuration   = 250 * time.Millisecond
	tailDuration   = 200 * time.Millisecond
)

var (
	auditionOut string
	sampleRate  int
	outputRate  int
	frameRate   int
)

func init() {
	rootCmd.AddCommand(auditionCmd)
	auditionCmd.Flags().StringVar(&auditionOut, "out", "audition.wav", "output WAV path")
	auditionCmd.Flags().IntVar(&sampleRate, "sample-rate", 48000, "render sample rate in Hz")
	auditionCmd.Flags().IntVar(&outputRate, "output-rate", 0, "resample the WAV to this rate (0 keeps the render rate)")
	auditionCmd.Flags().IntVar(&frameRate, "frame-rate", 30, "simulated camera frames per second")
}

var auditionCmd = &cobra.Command{
	Use:   "audition",
	Short: "Render every instrument sweep and drum pad to a WAV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		p, err := loadPreset()
		if err != nil {
			return err
		}
		samples, segments, err := renderAudition(p, sampleRate, frameRate)
		if err != nil {
			return err
		}
		for _, s := range segments {
			m := analysis.Measure(samples[s.start:s.end], sampleRate)
			logger.Info("segment",
				zap.String("name", s.name),
				zap.Float64("start_s", float64(s.start)/float64(sampleRate)),
				zap.Float64("rms", m.RMS),
				zap.Float64("peak", m.Peak),
				zap.Float64("dominant_hz", m.DominantHz),
				zap.Float64("pitch_hz", m.PitchHz),
				zap.Float64("decay_db_per_s", m.DecayDBPerS),
			)
		}

		rate := sampleRate
		if outputRate > 0 && outputRate != sampleRate {
			if samples, err = wavio.Resample(samples, sampleRate, outputRate); err != nil {
				return fmt.Errorf("resample: %w", err)
			}
			rate = outputRate
		}
		if err := wavio.WriteMono(auditionOut, samples, rate); err != nil {
			return err
		}
		if err := verifyWAV(auditionOut, len(samples), rate); err != nil {
			return err
		}
		logger.Info("wrote audition",
			zap.String("path", auditionOut),
			zap.Int("sample_rate", rate),
			zap.Float64("seconds", float64(len(samples))/float64(rate)),
		)
		return nil
	},
}

// verifyWAV reads back a written file and checks its length and rate.
func verifyWAV(path string, frames, rate int) error {
	got, gotRate, err := wavio.ReadMono(path)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}
	if gotRate != rate || len(got) != frames {
		return fmt.Errorf("read back %s: got %d frames at %d Hz, want %d at %d Hz", path, len(got), gotRate, frames, rate)
	}
	return nil
}

type segment struct {
	name       string
	start, end int
}

// renderAudition plays each instrument as a left-to-right sweep, one table
// entry per step, followed by one hit on every pad.
func renderAudition(p *preset.Preset, sampleRate, frameRate int) ([]float32, []segment, error) {
	if sampleRate <= 0 || frameRate <= 0 {
		return nil, nil, fmt.Errorf("invalid rates: sample=%d frame=%d", sampleRate, frameRate)
	}
	e := synth.NewEngine(sampleRate)
	framesPerStep := sampleRate / frameRate
	var out []float32
	var segments []segment

	render := func(d time.Duration) {
		n := int(d.Seconds() * float64(sampleRate))
		out = append(out, e.Process(n)...)
	}

	v := player.NewVoice(e, p.Catalog)
	for _, prof := range p.Catalog.Profiles() {
		start := len(out)
		steps := len(prof.Frequencies)
		framesPerNote := int(stepDuration.Seconds() * float64(frameRate))
		if framesPerNote < 1 {
			framesPerNote = 1
		}
		for i := 0; i < steps; i++ {
			x := (float64(i) + 0.5) / float64(steps)
			for f := 0; f < framesPerNote; f++ {
				if _, err := v.Play(prof.ID, x, auditionHeight); err != nil {
					return nil, nil, err
				}
				out = append(out, e.Process(framesPerStep)...)
			}
		}
		v.Stop()
		render(tailDuration)
		segments = append(segments, segment{name: string(prof.ID), start: start, end: len(out)})
	}

	trig := drum.NewTrigger(e, p.Kit)
	for _, pad := range drum.Pads() {
		start := len(out)
		trig.Trigger(pad, e.Now().Milliseconds())
		render(p.Kit[pad].Decay + tailDuration)
		segments = append(segments, segment{name: "pad:" + string(pad), start: start, end: len(out)})
	}
	return out, segments, nil
}
