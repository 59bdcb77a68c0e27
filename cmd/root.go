package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soundprobe/soundprobe/features"
	"github.com/soundprobe/soundprobe/logging"
	"github.com/soundprobe/soundprobe/transcode"
)

var errUsage = errors.New("usage: soundprobe <audio_file_path> <original_filename>")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soundprobe <audio_file_path> <original_filename>",
	Short: "Extract acoustic summary features from an audio file",
	Long: `soundprobe - Analyzes a single audio file and prints a compact JSON
record of acoustic summary features to stdout.

The record contains the duration, voiced-frame pitch statistics (mean/std
F0), spectral centroid, RMS energy and zero-crossing rate statistics, and
the time-averaged 13-coefficient MFCC vector.

Intended to be invoked by a backend process: the first argument is the path
of the (possibly temporary) audio file, the second is the original upload
name used only in diagnostics. On any failure a single diagnostic line is
written to stderr and the process exits with status 1.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errUsage
		}
		return nil
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := run(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	},
}

// run is the whole pipeline: decode, extract, serialize. Decode and compute
// failures share one error path on purpose; the caller only distinguishes
// exit 0 from exit 1.
func run(filePath, originalName string) (string, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "soundprobe",
		"file":      filePath,
	})

	decoder := transcode.NewDecoder(nil)
	audio, err := decoder.DecodeFile(filePath)
	if err != nil {
		return "", pipelineError(originalName, filePath, err)
	}

	logger.Debug("audio decoded", logging.Fields{
		"sample_rate": audio.SampleRate,
		"samples":     len(audio.PCM),
		"duration":    audio.Duration.Seconds(),
	})

	extractor := features.NewExtractor(audio.SampleRate)
	record, err := extractor.Extract(audio.PCM)
	if err != nil {
		return "", pipelineError(originalName, filePath, err)
	}
	record.Duration = audio.Duration.Seconds()

	line, err := record.EncodeJSON()
	if err != nil {
		return "", pipelineError(originalName, filePath, err)
	}

	return line, nil
}

// pipelineError formats the single diagnostic line the invoking backend
// scrapes from stderr.
func pipelineError(originalName, filePath string, err error) error {
	return fmt.Errorf("Error processing file '%s' (%s): %v", originalName, filePath, err)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
