// Command handsound serves the hand-tracking instrument to a browser and
// renders audition files of the instrument and pad tables.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-handsound/preset"
)

var (
	logLevel   string
	presetPath string
)

var rootCmd = &cobra.Command{
	Use:   "handsound",
	Short: "Play instruments and drums with your hand",
	Long: `handsound maps tracked hand positions onto instrument zones and drum pads.
"serve" runs the browser bridge, "audition" renders the sound tables to WAV.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&presetPath, "preset", "", "preset JSON overriding instrument and pad tables")
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func loadPreset() (*preset.Preset, error) {
	if presetPath == "" {
		return preset.Default(), nil
	}
	return preset.LoadJSON(presetPath)
}
