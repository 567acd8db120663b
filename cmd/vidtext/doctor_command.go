package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidtext/internal/deps"
	"vidtext/internal/device"
	"vidtext/internal/logging"
	"vidtext/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and the compute device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := preflight.CheckSystemDeps()
			selector := device.NewSelector(cfg.Transcription.Device, logging.NewNop())
			results := preflight.RunAll(cmd.Context(), cfg, selector)

			rows := make([][]string, 0, len(statuses)+len(results))
			for _, s := range statuses {
				rows = append(rows, []string{s.Name, renderStatus(depStatusKind(s), colorize), depDetail(s)})
			}
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				rows = append(rows, []string{r.Name, renderStatus(kind, colorize), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			for _, r := range results {
				if !r.Passed {
					return fmt.Errorf("%s check failed: %s", strings.ToLower(r.Name), r.Detail)
				}
			}
			return nil
		},
	}
}

func depStatusKind(s deps.Status) statusKind {
	switch {
	case s.Available:
		return statusOK
	case s.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func depDetail(s deps.Status) string {
	if s.Available {
		return s.Path
	}
	if s.Description != "" {
		return s.Detail + "; " + strings.ToLower(s.Description[:1]) + s.Description[1:]
	}
	return s.Detail
}
