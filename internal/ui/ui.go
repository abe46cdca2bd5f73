// package ui renders run summaries and status reports for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/duskren/ytrd/internal/checkpoint"
	"github.com/duskren/ytrd/internal/tasks"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// RenderSummary formats the end-of-run banner for a sync result.
func RenderSummary(title string, result *tasks.SyncResult) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if result.TotalPages > 0 {
		b.WriteString(fmt.Sprintf("Pages %d-%d of %d\n", result.StartPage, result.EndPage, result.TotalPages))
	}
	b.WriteString(fmt.Sprintf("Processed %d items\n", result.ItemsProcessed))

	b.WriteString(styles.ok.Render(fmt.Sprintf("  added   %d", result.Added)))
	b.WriteString("\n")
	b.WriteString(styles.warn.Render(fmt.Sprintf("  skipped %d", result.Skipped)))
	b.WriteString("\n")
	if result.Failed > 0 {
		b.WriteString(styles.err.Render(fmt.Sprintf("  failed  %d", result.Failed)))
	} else {
		b.WriteString(fmt.Sprintf("  failed  %d", result.Failed))
	}
	b.WriteString("\n")

	switch {
	case result.CatalogComplete:
		b.WriteString(styles.ok.Render("Catalog complete."))
		b.WriteString("\n")
	case result.NextPage > 0:
		b.WriteString(styles.help.Render(fmt.Sprintf("Run again to resume from page %d.", result.NextPage)))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderStatus formats the checkpoint state for the status command.
func RenderStatus(state *checkpoint.BatchState, complete bool) string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Sync status"))
	b.WriteString("\n")

	if state == nil {
		b.WriteString(styles.help.Render("No checkpoint found. Nothing has been synchronized yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Last completed page: %d of %d\n", state.LastCompletedPage, state.TotalPages))
	if state.LastAttemptedPage > state.LastCompletedPage {
		b.WriteString(styles.warn.Render(fmt.Sprintf("Last attempted page: %d (incomplete)", state.LastAttemptedPage)))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Added %d, skipped %d, failed %d\n", state.Added, state.Skipped, state.Failed))
	if !state.Timestamp.IsZero() {
		b.WriteString(styles.help.Render("Saved " + state.Timestamp.Format("2006-01-02 15:04:05 MST")))
		b.WriteString("\n")
	}

	if complete {
		b.WriteString(styles.ok.Render("Full catalog walk finished."))
		b.WriteString("\n")
	} else if state.TotalPages > 0 {
		b.WriteString(styles.help.Render(fmt.Sprintf("Resume with page %d.", state.LastCompletedPage+1)))
		b.WriteString("\n")
	}

	return b.String()
}
