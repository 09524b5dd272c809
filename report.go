package svcensure

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
)

// Report is the JSON document describing one reconciliation pass, written
// for consumption by the surrounding pipeline.
type Report struct {
	// Timestamp is when the report was written
	Timestamp time.Time `json:"timestamp"`
	// ForceStart echoes the force-start flag the pass ran with
	ForceStart bool `json:"forceStart"`
	// Services holds the per-service outcomes in input order
	Services []ReportEntry `json:"services"`
	// InvalidName mirrors Outcome.InvalidName
	InvalidName bool `json:"invalidName"`
	// ActionFailed mirrors Outcome.ActionFailed
	ActionFailed bool `json:"actionFailed"`
	// ExitCode is the exit code the process will report
	ExitCode int `json:"exitCode"`
}

// ReportEntry is one service's outcome in a Report
type ReportEntry struct {
	Service string `json:"service"`
	Action  string `json:"action"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}

// NewReport builds the report document for an outcome.
func NewReport(cfg RunConfig, outcome *Outcome) *Report {
	rep := &Report{
		Timestamp:    time.Now().UTC(),
		ForceStart:   cfg.ForceStart,
		Services:     make([]ReportEntry, 0, len(outcome.Results)),
		InvalidName:  outcome.InvalidName,
		ActionFailed: outcome.ActionFailed,
		ExitCode:     outcome.ExitCode(),
	}

	for _, res := range outcome.Results {
		entry := ReportEntry{
			Service: res.Service,
			Action:  res.Action.String(),
			State:   res.State.String(),
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		rep.Services = append(rep.Services, entry)
	}

	return rep
}

// WriteReport writes the report for an outcome to path as JSON. The write
// is atomic: a partially written report would be worse than none for the
// pipeline reading it.
func WriteReport(path string, cfg RunConfig, outcome *Outcome) error {
	data, err := json.MarshalIndent(NewReport(cfg, outcome), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
