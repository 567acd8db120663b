package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vidtext/internal/audio"
	"vidtext/internal/config"
	"vidtext/internal/device"
	"vidtext/internal/logging"
	"vidtext/internal/pipeline"
	"vidtext/internal/transcript"
	"vidtext/internal/whisperx"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// logger builds the process logger. Log lines go to the command's stderr so
// stdout carries only transcript lines.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.OptionsFromConfig(cfg)
	errOut := cmd.ErrOrStderr()
	opts.Writer = errOut
	opts.Color = shouldColorize(errOut)
	return logging.New(opts)
}

func buildPipeline(cfg *config.Config, logger *slog.Logger, stdout io.Writer) *pipeline.Pipeline {
	engine := whisperx.NewService(whisperx.Config{
		BatchSize:    cfg.Transcription.BatchSize,
		VADMethod:    cfg.Transcription.VADMethod,
		HFToken:      cfg.Transcription.HFToken,
		CUDAIndexURL: cfg.Transcription.CUDAIndexURL,
	}, logger)
	return pipeline.New(
		audio.NewExtractor(logger),
		device.NewSelector(cfg.Transcription.Device, logger),
		engine,
		transcript.NewWriter(stdout),
		logger,
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
