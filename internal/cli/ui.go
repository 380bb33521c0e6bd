package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/window"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// leafColors tints leaves in the preview, cycling by leaf index.
var leafColors = []lipgloss.Color{"75", "220", "114", "204", "183", "215", "109", "153"}

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return styleTableCell
		})
}

// placementTable renders one row per node, indented by depth.
// With leavesOnly, containers are omitted.
func placementTable(p *placement.Placement, leavesOnly bool) string {
	t := newTable("Node", "Size", "X", "Y", "Width", "Height")
	for _, it := range p.Items {
		if leavesOnly && !it.IsLeaf() {
			continue
		}
		name := it.Label
		if name == "" {
			name = "#" + strconv.Itoa(it.ID)
		}
		if !it.IsLeaf() {
			name += " " + StyleDim.Render(it.Direction)
		}
		if !leavesOnly {
			name = indent(it.Depth) + name
		}
		t.Row(name, it.Size.String(),
			strconv.Itoa(it.Rect.X), strconv.Itoa(it.Rect.Y),
			strconv.Itoa(it.Rect.Width), strconv.Itoa(it.Rect.Height))
	}
	return t.Render()
}

// movesTable renders the windows moved by a placement.
func movesTable(moves []window.Move) string {
	t := newTable("Label", "Window", "Geometry")
	for _, m := range moves {
		t.Row(m.Label, m.Handle.String(), m.Rect.String())
	}
	return t.Render()
}

// windowRow is one line of the windows command.
type windowRow struct {
	window.Window
	Geometry string
}

// windowsTable renders open windows.
func windowsTable(rows []windowRow) string {
	t := newTable("Window", "PID", "Desktop", "Geometry", "Title")
	for _, r := range rows {
		t.Row(r.Handle.String(), strconv.Itoa(r.PID), strconv.Itoa(r.Desktop), r.Geometry, r.Title)
	}
	return t.Render()
}

// describeExprError points at the offending byte of src for syntax errors.
func describeExprError(src string, err error) error {
	off, ok := expr.Offset(err)
	if !ok || off > len(src) {
		return err
	}
	return fmt.Errorf("%w\n  %s\n  %s%s", err, src, strings.Repeat(" ", off), styleIconError.Render("^"))
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
