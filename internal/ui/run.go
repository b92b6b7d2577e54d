package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"cstree/internal/driver"
)

// RunProgress shows the progress screen on out until events is closed.
// It blocks, so the producer runs in its own goroutine.
func RunProgress(out io.Writer, title string, files []string, events <-chan driver.Event) error {
	p := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	// экран закрыли раньше: дочитываем события, чтобы воркеры не встали
	for range events {
	}
	return err
}
