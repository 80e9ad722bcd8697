package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"datatests/internal/datatest/models"
	id "datatests/pkg/domain"
)

// messageWidth bounds the message column of text reports.
const messageWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	xfailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummaries(w io.Writer, format string, summaries []*models.RunSummary) error {
	if format == "json" {
		return writeJSON(w, summaries)
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.TypeName),
			s.MethodName,
			string(s.Kind),
			strconv.Itoa(s.Counts.Passed),
			strconv.Itoa(s.Counts.Failed),
			strconv.Itoa(s.Counts.FailedXFail),
			strconv.Itoa(s.Purged),
			runewidth.Truncate(s.BatchError, messageWidth, "..."),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 && row >= 0 && row < len(summaries) {
				s := summaries[row]
				switch {
				case s.Counts.Failed > s.Counts.FailedXFail:
					return failStyle
				case s.Counts.Failed > 0:
					return xfailStyle
				}
				return passStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("TYPE", "TEST", "KIND", "PASSED", "FAILED", "XFAIL", "PURGED", "ERROR").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t)
	return err
}

func writeMethods(w io.Writer, format string, methods []*models.TestMethod) error {
	if format == "json" {
		return writeJSON(w, methods)
	}
	if len(methods) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No data tests registered."))
		return err
	}
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{m.ID.String(), string(m.TypeName), m.MethodName, string(m.Kind), m.Title})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("ID", "TYPE", "TEST", "KIND", "TITLE").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t)
	return err
}

// resultLine is the JSON shape of one row in the results report.
type resultLine struct {
	*models.TestResult
	MethodName string `json:"method_name"`
}

func writeResults(w io.Writer, format string, results []*models.TestResult, methods map[id.TestMethodID]*models.TestMethod) error {
	name := func(r *models.TestResult) string {
		if m, ok := methods[r.TestMethodID]; ok {
			return m.MethodName
		}
		return r.TestMethodID.String()
	}

	if format == "json" {
		lines := make([]resultLine, 0, len(results))
		for _, r := range results {
			lines = append(lines, resultLine{TestResult: r, MethodName: name(r)})
		}
		return writeJSON(w, lines)
	}
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No results."))
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		object := mutedStyle.Render("(deleted)")
		if r.ObjectID != nil {
			object = string(*r.ObjectID)
		}
		rows = append(rows, []string{
			string(r.TypeName),
			object,
			name(r),
			status(r),
			runewidth.Truncate(r.Message, messageWidth, "..."),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 && row >= 0 && row < len(results) {
				r := results[row]
				switch {
				case r.Passed:
					return passStyle
				case r.XFail:
					return xfailStyle
				}
				return failStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("TYPE", "OBJECT", "TEST", "STATUS", "MESSAGE").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t)
	return err
}

func status(r *models.TestResult) string {
	switch {
	case r.Passed:
		return "pass"
	case r.XFail:
		return "xfail"
	}
	return "fail"
}
