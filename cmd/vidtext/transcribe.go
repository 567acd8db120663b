package main

import (
	"github.com/spf13/cobra"

	"vidtext/internal/pipeline"
)

type transcribeOptions struct {
	input     string
	output    string
	language  string
	keepAudio bool
}

func runTranscribe(cmd *cobra.Command, ctx *commandContext, opts transcribeOptions) error {
	job, err := pipeline.NewJob(opts.input, opts.output, opts.language, opts.keepAudio)
	if err != nil {
		return err
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	return buildPipeline(cfg, logger, cmd.OutOrStdout()).Run(cmd.Context(), job)
}
