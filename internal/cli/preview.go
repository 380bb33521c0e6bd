package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/screengod/pkg/pipeline"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/render/canvas"
)

// Preview chrome: title, help line, blank line and status line.
const previewChromeRows = 4

var (
	previewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorCyan)
	previewHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// previewModel - Interactive layout preview
// =============================================================================

// previewModel is the bubbletea model drawing a placement scaled into the
// terminal, with one leaf selected at a time.
type previewModel struct {
	src       string
	placement *placement.Placement
	leaves    []placement.Item
	colors    map[int]lipgloss.Style
	cursor    int
	width     int
	height    int
}

func newPreviewModel(src string, p *placement.Placement) previewModel {
	m := previewModel{
		src:       src,
		placement: p,
		leaves:    p.Leaves(),
		colors:    make(map[int]lipgloss.Style),
		width:     80,
		height:    24,
	}
	for i, it := range m.leaves {
		m.colors[it.ID] = lipgloss.NewStyle().Foreground(leafColors[i%len(leafColors)])
	}
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "down", "l", "j":
			if len(m.leaves) > 0 {
				m.cursor = (m.cursor + 1) % len(m.leaves)
			}
		case "shift+tab", "left", "up", "h", "k":
			if len(m.leaves) > 0 {
				m.cursor = (m.cursor - 1 + len(m.leaves)) % len(m.leaves)
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.src))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("tab/←→ select leaf  q quit"))
	b.WriteString("\n")

	rows := max(m.height-previewChromeRows, 1)
	grid := canvas.NewGrid(m.placement, max(m.width, 1), rows)
	b.WriteString(m.renderGrid(grid))
	b.WriteString("\n\n")
	b.WriteString(m.status())

	return b.String()
}

// selected returns the ID of the highlighted leaf, or -1.
func (m previewModel) selected() int {
	if len(m.leaves) == 0 {
		return -1
	}
	return m.leaves[m.cursor].ID
}

// renderGrid colors each run of cells by the leaf that owns it.
func (m previewModel) renderGrid(g *canvas.Grid) string {
	sel := m.selected()
	lines := g.Lines()
	out := make([]string, len(lines))
	for y, line := range lines {
		cells := []rune(line)
		var row strings.Builder
		for x := 0; x < len(cells); {
			owner := g.Owner(x, y)
			end := x + 1
			for end < len(cells) && g.Owner(end, y) == owner {
				end++
			}
			run := string(cells[x:end])
			switch {
			case owner == -1:
				row.WriteString(run)
			case owner == sel:
				row.WriteString(previewSelectedStyle.Render(run))
			default:
				row.WriteString(m.colors[owner].Render(run))
			}
			x = end
		}
		out[y] = row.String()
	}
	return strings.Join(out, "\n")
}

func (m previewModel) status() string {
	if len(m.leaves) == 0 {
		return StyleDim.Render("no leaves")
	}
	it := m.leaves[m.cursor]
	name := it.Label
	if name == "" {
		name = fmt.Sprintf("#%d", it.ID)
	}
	return fmt.Sprintf("%s %s %s %s",
		StyleHighlight.Render(name),
		StyleDim.Render("size "+it.Size.String()),
		StyleValue.Render(it.Rect.String()),
		StyleDim.Render(fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.leaves))))
}

// =============================================================================
// Command
// =============================================================================

// previewCommand shows a resolved layout in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var screen string

	cmd := &cobra.Command{
		Use:   "preview <expr>",
		Short: "Preview a layout interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], screen)
		},
	}
	cmd.Flags().StringVar(&screen, "screen", "", "screen geometry WIDTHxHEIGHT[+X+Y] (default from config)")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, src, screenFlag string) error {
	screen, err := c.screen(screenFlag)
	if err != nil {
		return err
	}
	res, err := c.newRunner(nil).Layout(ctx, pipeline.Options{Expr: src, Screen: screen})
	if err != nil {
		return describeExprError(src, err)
	}

	p := tea.NewProgram(newPreviewModel(src, res.Placement), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
