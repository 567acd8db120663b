package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts transcribeOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "vidtext --input <video>",
		Short: "Transcribe a video file to timestamped text",
		Long: "vidtext extracts the audio track of an mp4, mkv or avi file with ffmpeg,\n" +
			"transcribes it with WhisperX and writes one \"[start - end] text\" line per\n" +
			"segment to a .txt file next to the video (and to stdout).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Video file to transcribe (mp4, mkv, or avi)")
	flags.StringVarP(&opts.output, "output", "o", "", "Transcript path (default: input with .txt extension)")
	flags.StringVarP(&opts.language, "language", "l", "", "Language code hint, e.g. en (default: auto-detect)")
	flags.BoolVar(&opts.keepAudio, "keep-audio", false, "Keep the extracted temporary WAV file")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
