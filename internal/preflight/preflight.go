package preflight

import (
	"context"
	"os"
	"strings"

	"vidtext/internal/config"
	"vidtext/internal/device"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// DeviceSelector is satisfied by device.Selector.
type DeviceSelector interface {
	Select(ctx context.Context) device.Info
}

// RunAll executes the environment checks shown by the doctor command.
func RunAll(ctx context.Context, cfg *config.Config, selector DeviceSelector) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Scratch directory", os.TempDir())}
	if selector != nil {
		results = append(results, CheckDevice(ctx, selector, cfg.Transcription.Device))
	}
	return results
}

// CheckDevice reports which compute device a run would use. Falling back to
// the CPU is not a failure.
func CheckDevice(ctx context.Context, selector DeviceSelector, preference string) Result {
	info := selector.Select(ctx)
	detail := info.String()
	if strings.EqualFold(strings.TrimSpace(preference), config.DeviceCPU) {
		detail += " (forced by config)"
	}
	return Result{Name: "Compute device", Passed: true, Detail: detail}
}
