package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/synheart-ai/synheart-core/internal/diffhsi"
	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

func writeTestPayload(t *testing.T, path string, score float64) {
	t.Helper()
	payload := hsimodel.HSI10Payload{
		HSIVersion:    hsimodel.HSIVersion,
		ObservedAtUTC: "2026-01-01T00:00:00Z",
		ComputedAtUTC: "2026-01-01T00:00:00Z",
		WindowIDs:     []string{"30s:2026-01-01T00:00:00Z"},
		Windows: map[string]hsimodel.HSIWindowSpan{
			"30s:2026-01-01T00:00:00Z": {Label: "micro_window"},
		},
		Axes: hsimodel.HSIAxes{
			Behavior: &hsimodel.HSIAxisGroup{
				Readings: []hsimodel.HSIReading{
					{Axis: "motion", Score: score, Confidence: 1, WindowID: "30s:2026-01-01T00:00:00Z"},
				},
			},
		},
		Privacy: hsimodel.FixedPrivacyBlock(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
}

func TestLoadPayloadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	writeTestPayload(t, path, 0.4)

	got, err := loadPayload(path)
	if err != nil {
		t.Fatalf("loadPayload() error: %v", err)
	}
	if got.HSIVersion != hsimodel.HSIVersion {
		t.Errorf("HSIVersion = %q, want %q", got.HSIVersion, hsimodel.HSIVersion)
	}
	if len(got.WindowIDs) != 1 {
		t.Errorf("len(WindowIDs) = %d, want 1", len(got.WindowIDs))
	}
}

func TestFormatDiffReportsChangesAndEmbeddingDistance(t *testing.T) {
	report := diffhsi.Report{
		BaselineObservedAtUTC: "t0",
		CurrentObservedAtUTC:  "t1",
		Changes: []diffhsi.ReadingChange{
			{Axis: "motion", OldScore: 0.2, NewScore: 0.6, DeltaPct: 200, Direction: "increase", Significance: "high"},
		},
		Appeared:    []string{"arousal_index"},
		Disappeared: []string{"screen_active_ratio"},
	}
	dist := 0.25
	report.EmbeddingDistance = &dist

	out := formatDiff(report)
	for _, want := range []string{"motion", "arousal_index (new)", "screen_active_ratio (gone)", "0.2500"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatDiff output missing %q; got:\n%s", want, out)
		}
	}
}

func TestRunDiffCommandComparesTwoSnapshotFiles(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.json")
	current := filepath.Join(dir, "current.json")
	writeTestPayload(t, baseline, 0.2)
	writeTestPayload(t, current, 0.8)

	out := filepath.Join(dir, "diff.json")
	if err := runDiff(baseline, current, out); err != nil {
		t.Fatalf("runDiff() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read diff output: %v", err)
	}
	var report diffhsi.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("diff output is not valid JSON: %v", err)
	}
	if len(report.Changes) != 1 {
		t.Fatalf("len(Changes) = %d, want 1", len(report.Changes))
	}
	if report.Changes[0].Direction != "increase" {
		t.Errorf("Changes[0].Direction = %q, want increase", report.Changes[0].Direction)
	}
}

func TestDiffCommandRequiresExactlyTwoArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"diff", "one-file.json"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want an error for missing second argument")
	}
}

func TestSetLogLevelFallsBackToInfoOnInvalidInput(t *testing.T) {
	// setLogLevel must not panic on garbage input; it degrades to info.
	setLogLevel("not-a-level")
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("global level = %v, want %v", got, zerolog.InfoLevel)
	}
}
