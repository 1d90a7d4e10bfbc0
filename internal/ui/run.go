package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"busguard/internal/driver"
)

// Progress runs the progress program on out while work executes. work gets a
// sink to report into; the program stops once work returns.
func Progress(out io.Writer, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 64)
	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	errCh := make(chan error, 1)
	go func() {
		err := work(driver.ChannelSink{Ch: events})
		close(events)
		errCh <- err
	}()

	if _, err := program.Run(); err != nil {
		// UI failed: drain events so work can finish.
		for range events {
		}
		return <-errCh
	}
	return <-errCh
}
