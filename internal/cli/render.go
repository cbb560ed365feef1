package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/domain/season"
)

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")

	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleOK      = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorError)

	labelOngoing  = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	labelUpcoming = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) printNotice(msg string) {
	if a.asJSON {
		_ = a.printJSON(map[string]string{"notice": msg})
		return
	}
	fmt.Fprintln(a.stdout, styleWarn.Render(msg))
}

func (a *App) printResult(res seasons.Result) error {
	if a.asJSON {
		return a.printJSON(res)
	}
	line := fmt.Sprintf("%s %s", styleOK.Render(res.Action), res.Domain)
	if res.Tournament != nil {
		line += fmt.Sprintf(": %s (%s..%s)", res.Tournament.Name, res.Tournament.StartDate, res.Tournament.EndDate)
	}
	fmt.Fprintln(a.stdout, line)
	a.renderReport(res.Report)
	return nil
}

func (a *App) printAuto(results []seasons.AutoResult) error {
	if a.asJSON {
		return a.printJSON(results)
	}
	t := newTable(a.stdout)
	t.AppendHeader(table.Row{"Domain", "Action", "Tournament"})
	for _, r := range results {
		name := "-"
		if r.Tournament != nil {
			name = r.Tournament.Name
		}
		action := r.Action
		if !r.Changed() {
			action = styleMuted.Render("no-op")
		}
		t.AppendRow(table.Row{r.Domain, action, name})
	}
	t.Render()
	return nil
}

func (a *App) printReports(reports []seasons.Report) error {
	if a.asJSON {
		if len(reports) == 1 {
			return a.printJSON(reports[0])
		}
		return a.printJSON(reports)
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		a.renderReport(r)
	}
	return nil
}

func (a *App) renderReport(r seasons.Report) {
	fmt.Fprintf(a.stdout, "%s  %s  %s\n", styleHeading.Render(r.Domain), renderLabel(r.State), styleMuted.Render("today "+r.Today))

	t := newTable(a.stdout)
	t.AppendRow(table.Row{"Season active", yesNo(r.SeasonActive)})
	current := "-"
	if r.Current != nil {
		current = fmt.Sprintf("%s (%s..%s, %s)", r.Current.Name, r.Current.StartDate, r.Current.EndDate, r.Current.UpdateFrequency)
		if r.Current.Kind == season.KindEnded {
			current += " " + styleWarn.Render("[ended, run auto]")
		}
	}
	t.AppendRow(table.Row{"Current", current})
	t.AppendRow(table.Row{"Update frequency", r.UpdateFrequency})
	t.AppendRow(table.Row{"Last updated", lastUpdated(r)})
	t.Render()

	if len(r.Upcoming) > 0 {
		up := newTable(a.stdout)
		up.SetTitle("Upcoming")
		up.AppendHeader(table.Row{"#", "Name", "Start", "End", "Frequency"})
		for i, u := range r.Upcoming {
			up.AppendRow(table.Row{i + 1, u.Name, u.StartDate, u.EndDate, u.UpdateFrequency})
		}
		up.Render()
	}

	if len(r.Seasons) > 0 {
		st := newTable(a.stdout)
		st.SetTitle("Seasons")
		st.AppendHeader(table.Row{"Key", "Start", "End", "Confirmed", "State"})
		for _, s := range r.Seasons {
			st.AppendRow(table.Row{s.Key, s.Start, s.End, yesNo(s.Confirmed), string(s.Kind)})
		}
		st.Render()
	}

	for _, w := range r.Warnings {
		fmt.Fprintln(a.stdout, styleWarn.Render("warning: "+w))
	}
}

func renderLabel(s seasons.StateView) string {
	switch s.Kind {
	case season.KindOngoing:
		return labelOngoing.Render(s.Label) + " " + s.Window
	case season.KindUpcoming:
		return labelUpcoming.Render(s.Label) + " " + s.Window
	default:
		return styleMuted.Render("off-season")
	}
}

func lastUpdated(r seasons.Report) string {
	if r.LastUpdated == nil {
		if !r.Persisted {
			return "never (built-in defaults)"
		}
		return "never"
	}
	return r.LastUpdated.Format(time.RFC3339)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
