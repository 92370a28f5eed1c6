package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// recordingReporter records every call it receives, in order, so tests can
// assert both delivery and ordering.
type recordingReporter struct {
	calls []string
}

func (r *recordingReporter) BatchStarted(info BatchStartInfo)      { r.calls = append(r.calls, "BatchStarted") }
func (r *recordingReporter) FileProgress(c FileProgressContext)    { r.calls = append(r.calls, "FileProgress") }
func (r *recordingReporter) StageProgress(u StageProgress)         { r.calls = append(r.calls, "StageProgress") }
func (r *recordingReporter) BatchComplete(s BatchSummary)          { r.calls = append(r.calls, "BatchComplete") }
func (r *recordingReporter) Warning(message string)                { r.calls = append(r.calls, "Warning") }
func (r *recordingReporter) Error(err ReporterError)                { r.calls = append(r.calls, "Error") }
func (r *recordingReporter) OperationComplete(message string)      { r.calls = append(r.calls, "OperationComplete") }

func TestCompositeReporterFansOutToAll(t *testing.T) {
	a := &recordingReporter{}
	b := &recordingReporter{}
	c := NewCompositeReporter(a, b)

	c.BatchStarted(BatchStartInfo{TotalFiles: 3})
	c.FileProgress(FileProgressContext{CurrentFile: 1})
	c.StageProgress(StageProgress{Stage: "decode"})
	c.Warning("careful")
	c.Error(ReporterError{Title: "oops"})
	c.OperationComplete("done")
	c.BatchComplete(BatchSummary{TotalFiles: 3})

	want := []string{
		"BatchStarted", "FileProgress", "StageProgress",
		"Warning", "Error", "OperationComplete", "BatchComplete",
	}
	for _, rec := range []*recordingReporter{a, b} {
		if len(rec.calls) != len(want) {
			t.Fatalf("expected %d calls, got %d: %v", len(want), len(rec.calls), rec.calls)
		}
		for i, w := range want {
			if rec.calls[i] != w {
				t.Errorf("call %d: expected %s, got %s", i, w, rec.calls[i])
			}
		}
	}
}

func TestNullReporterDoesNothing(t *testing.T) {
	var r Reporter = NullReporter{}
	r.BatchStarted(BatchStartInfo{})
	r.FileProgress(FileProgressContext{})
	r.StageProgress(StageProgress{})
	r.Warning("x")
	r.Error(ReporterError{})
	r.OperationComplete("x")
	r.BatchComplete(BatchSummary{})
}

func TestJSONReporterEmitsOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)

	r.BatchStarted(BatchStartInfo{TotalFiles: 2, OutputDir: "out", Threads: 4})
	r.FileProgress(FileProgressContext{CurrentFile: 1, TotalFiles: 2, Filename: "a.jpg", Stage: "resize"})
	r.Warning("low disk space")
	r.Error(ReporterError{Title: "decode failed", Message: "bad header"})
	r.BatchComplete(BatchSummary{SuccessfulCount: 1, FailedCount: 1, TotalFiles: 2})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 NDJSON lines, got %d: %q", len(lines), buf.String())
	}

	var started map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &started); err != nil {
		t.Fatalf("invalid JSON in batch_started line: %v", err)
	}
	if started["type"] != "batch_started" {
		t.Errorf("expected type batch_started, got %v", started["type"])
	}
	if started["total_files"].(float64) != 2 {
		t.Errorf("expected total_files 2, got %v", started["total_files"])
	}

	var errEvent map[string]interface{}
	if err := json.Unmarshal([]byte(lines[3]), &errEvent); err != nil {
		t.Fatalf("invalid JSON in error line: %v", err)
	}
	if errEvent["title"] != "decode failed" {
		t.Errorf("expected title 'decode failed', got %v", errEvent["title"])
	}
}

func TestJSONReporterBatchCompleteIncludesFileResults(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)

	r.BatchComplete(BatchSummary{
		SuccessfulCount: 1,
		TotalFiles:      1,
		FileResults: []FileResult{
			{Filename: "a.jpg", OriginalSize: 1000, ResizedSize: 400},
		},
	})

	var event map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	results, ok := event["file_results"].([]interface{})
	if !ok || len(results) != 1 {
		t.Fatalf("expected 1 file_results entry, got %v", event["file_results"])
	}
}
