// Package summary renders the end-of-run overview printed after a report.
package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe/file-report/internal/report"
)

// Render formats result as label/value lines. When styled is true the
// lines are colored and wrapped in a rounded box for a terminal.
func Render(result report.Result, styled bool) string {
	title, titleStyle := heading(result)

	fields := [][2]string{
		{"Status", result.Status.String()},
		{"Report", result.ReportPath},
	}

	if result.Status == report.StatusAborted {
		fields = append(fields, [2]string{"Reason", reasonText(result.Reason)})
	} else {
		fields = append(fields,
			[2]string{"Files", filesText(result.Files)},
			[2]string{"Bytes", FormatBytes(result.Bytes)},
			[2]string{"Skipped", strconv.Itoa(result.Skipped)},
		)
	}

	fields = append(fields, [2]string{"Duration", FormatDuration(result.Duration)})

	if !styled {
		lines := []string{title}
		for _, field := range fields {
			lines = append(lines, fmt.Sprintf("%-9s %s", field[0]+":", field[1]))
		}

		return strings.Join(lines, "\n") + "\n"
	}

	lines := []string{titleStyle.Render(title), ""}
	for _, field := range fields {
		lines = append(lines, LabelStyle().Render(fmt.Sprintf("%-9s", field[0]+":"))+" "+field[1])
	}

	if result.Status == report.StatusPartial {
		lines = append(lines, "", DimStyle().Render("Run with --verbose to see which entries were skipped."))
	}

	return BoxStyle().Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

// FormatBytes formats a byte count for humans (e.g., "1.5 MB").
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats a duration for humans (e.g., "2m 30s").
// Sub-second runs are shown in milliseconds.
func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

func filesText(count int) string {
	if count == 1 {
		return "1 file"
	}

	return strconv.Itoa(count) + " files"
}

func heading(result report.Result) (string, lipgloss.Style) {
	switch result.Status {
	case report.StatusOK:
		return "Report complete", SuccessStyle()
	case report.StatusPartial:
		return "Report complete with skipped entries", WarningStyle()
	case report.StatusAborted:
		return "Report aborted", ErrorStyle()
	default:
		return "Report finished", DimStyle()
	}
}

func reasonText(err error) string {
	if err == nil {
		return "unknown"
	}

	return err.Error()
}
