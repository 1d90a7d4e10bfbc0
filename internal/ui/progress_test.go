package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"busguard/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("busguard check", files, nil).(*progressModel)
}

func TestApplyEventUpdatesFile(t *testing.T) {
	m := newModel("A.java", "B.java")
	m.applyEvent(driver.Event{File: "A.java", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != driver.StatusWorking {
		t.Fatalf("status = %s", m.items[0].status)
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v", got)
	}
	m.applyEvent(driver.Event{File: "A.java", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "B.java", Status: driver.StatusError})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	// неизвестный файл игнорируется
	if cmd := m.applyEvent(driver.Event{File: "C.java", Status: driver.StatusDone}); cmd != nil {
		t.Fatal("unknown file must not produce a command")
	}
}

func TestStageEventsSetLabel(t *testing.T) {
	m := newModel("A.java")
	m.applyEvent(driver.Event{Stage: driver.StageProcess, Status: driver.StatusWorking})
	if !strings.Contains(m.View(), "checking listeners") {
		t.Fatalf("view lacks stage label:\n%s", m.View())
	}
}

func TestViewLimitsRows(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".java"
	}
	m := newModel(files...)
	m.applyEvent(driver.Event{File: files[19], Status: driver.StatusWorking})
	view := m.View()
	if !strings.Contains(view, "… and 8 more") {
		t.Fatalf("expected overflow line:\n%s", view)
	}
	if !strings.Contains(view, files[19]) {
		t.Fatalf("working file must stay visible:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/main/java/Events.java", 10); got != "src/mai..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("src/main/java/Events.java", 10); runewidth.StringWidth(got) != 10 {
		t.Fatalf("width = %d", runewidth.StringWidth(got))
	}
	if got := truncate("Events.java", 40); got != "Events.java" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("日本語ファイル.java", 6); got != "日..." {
		t.Fatalf("wide runes: %q", got)
	}
}
