// Package cli renders styled terminal output for the audiofx command.
package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
	"github.com/cwbudde/algo-audiofx/dsp/spectrum"
	"github.com/cwbudde/algo-audiofx/measure/ir"
	"github.com/cwbudde/algo-audiofx/measure/level"
	"github.com/cwbudde/algo-audiofx/measure/loudness"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#2E86AB")
	warnColor    = lipgloss.Color("#F6AE2D")
	errorColor   = lipgloss.Color("#C0392B")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warnColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	barStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// PrintVersion prints version information.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("audiofx"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

func keyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("%-10s", key+":")), ValueStyle.Render(value))
}

// PrintSummary describes one processed file.
func PrintSummary(w io.Writer, input, output string, in core.Waveform, res effectchain.Result, elapsed time.Duration) {
	fmt.Fprintln(w, TitleStyle.Render(input))
	keyValue(w, "Output", output)
	keyValue(w, "Rate", fmt.Sprintf("%d Hz", in.SampleRate))
	keyValue(w, "Length", fmt.Sprintf("%s -> %s", in.Duration().Round(time.Millisecond), res.Waveform.Duration().Round(time.Millisecond)))
	before, after := level.Of(in), level.Of(res.Waveform)
	keyValue(w, "Peak", fmt.Sprintf("%.2f dBFS -> %.2f dBFS", before.PeakDB(), after.PeakDB()))
	keyValue(w, "RMS", fmt.Sprintf("%.2f dBFS -> %.2f dBFS", before.RMSDB(), after.RMSDB()))
	keyValue(w, "Crest", fmt.Sprintf("%.2f dB -> %.2f dB", before.CrestFactorDB(), after.CrestFactorDB()))
	if li, lo := measureLoudness(in), measureLoudness(res.Waveform); li != "" && lo != "" {
		keyValue(w, "Loudness", li+" -> "+lo)
	}
	keyValue(w, "Stages", strings.Join(res.Applied, " → "))
	keyValue(w, "Time", elapsed.Round(time.Millisecond).String())

	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%s %s: %v\n", WarnStyle.Render("Skipped:"), s.Stage, s.Err)
	}
}

// measureLoudness formats integrated loudness, or returns "" when the
// signal is too short or quiet to pass the gates.
func measureLoudness(w core.Waveform) string {
	res, err := loudness.Measure(w)
	if err != nil || math.IsInf(res.Integrated, -1) {
		return ""
	}
	return fmt.Sprintf("%.1f LUFS", res.Integrated)
}

// PrintBandReport prints a bar chart of per-band energy shares.
func PrintBandReport(w io.Writer, bands []spectrum.Band) {
	const width = 40

	fmt.Fprintln(w, TitleStyle.Render("Band energy"))
	for _, b := range bands {
		n := int(b.Share*width + 0.5)
		label := fmt.Sprintf("%6.0f-%-6.0f Hz", b.Low, b.High)
		fmt.Fprintf(w, "%s %s %s\n",
			KeyStyle.Render(label),
			barStyle.Render(strings.Repeat("█", n)+strings.Repeat("·", width-n)),
			ValueStyle.Render(fmt.Sprintf("%7.2f dB", b.DB())))
	}
}

// PrintKernelReport describes the reverb impulse response.
func PrintKernelReport(w io.Writer, kernel core.Waveform, m ir.Metrics) {
	fmt.Fprintln(w, TitleStyle.Render("Reverb"))
	keyValue(w, "Kernel", fmt.Sprintf("%s at %d Hz", kernel.Duration().Round(time.Millisecond), kernel.SampleRate))
	keyValue(w, "RT60", fmt.Sprintf("%.2f s", m.RT60))
	keyValue(w, "EDT", fmt.Sprintf("%.2f s", m.EDT))
	keyValue(w, "C80", fmt.Sprintf("%.1f dB", m.C80))
}
