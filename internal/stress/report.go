package stress

import (
	"fmt"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/charmbracelet/lipgloss"
)

// Report summarizes a Run.
type Report struct {
	Capacity  int
	Workers   int
	Acquired  int // successful acquires
	Timeouts  int // acquires that gave up
	MaxHeld   int // peak simultaneous holders
	Available int // permits free after the run
	Queued    int // waiters left after the run
	Elapsed   time.Duration
}

// OK reports whether the bound held and every permit came back.
func (r Report) OK() bool {
	return r.MaxHeld <= r.Capacity && r.Available == r.Capacity && r.Queued == 0
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(11)

	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Render formats the report for a terminal.
func (r Report) Render() string {
	status := okStyle.Render("OK")
	if !r.OK() {
		status = failStyle.Render("FAIL")
	}

	row := func(label string, v interface{}) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), fmt.Sprint(v))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("semaphore stress"),
		row("capacity", r.Capacity),
		row("workers", r.Workers),
		row("acquired", r.Acquired),
		row("timeouts", r.Timeouts),
		row("max held", r.MaxHeld),
		row("available", r.Available),
		row("queued", r.Queued),
		row("elapsed", r.Elapsed.Round(time.Millisecond)),
		row("status", status),
	)
	return boxStyle.Render(body)
}

// JSON encodes the report as an indented JSON object.
func (r Report) JSON() ([]byte, error) {
	j := simplejson.New()
	j.Set("capacity", r.Capacity)
	j.Set("workers", r.Workers)
	j.Set("acquired", r.Acquired)
	j.Set("timeouts", r.Timeouts)
	j.Set("maxHeld", r.MaxHeld)
	j.Set("available", r.Available)
	j.Set("queued", r.Queued)
	j.Set("elapsedMs", r.Elapsed.Milliseconds())
	j.Set("ok", r.OK())
	return j.EncodePretty()
}
