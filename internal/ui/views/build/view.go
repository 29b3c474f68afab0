package build

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	builddto "focusflow/internal/modules/build/dto"
	"focusflow/internal/ui/theme"
	"focusflow/internal/ui/views"
)

type Port interface {
	Place(ctx context.Context, image, color string, width, height, x, y, z float64) (builddto.ItemOutput, error)
	Move(ctx context.Context, id string, x, y float64) (builddto.ItemOutput, error)
	List(ctx context.Context) (builddto.ListOutput, error)
	Clear(ctx context.Context) error
}

type LoadedMsg struct {
	Out builddto.ListOutput
	Err error
}

type changedMsg struct{ err error }

type buildItem struct{ it builddto.ItemOutput }

func (i buildItem) Title() string { return i.it.Name }

func (i buildItem) Description() string {
	return fmt.Sprintf("%s %gx%g at (%g, %g) z%g", i.it.Kind, i.it.Width, i.it.Height, i.it.OffsetX, i.it.OffsetY, i.it.ZIndex)
}

func (i buildItem) FilterValue() string { return i.it.Name }

// step is how far one arrow key nudges the selected item, in canvas units.
const step = 10

// cell is how many canvas units one preview character covers.
const cell = 10

type Model struct {
	port   Port
	list   list.Model
	items  []builddto.ItemOutput
	note   string
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port, list: views.NewList("Canvas")}
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd { return m.LoadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/3, msg.Height-1)
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.note = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		m.note = ""
		if msg.Out.Cleared {
			m.note = theme.Bad.Render("A failed session knocked the canvas down.")
		}
		m.items = msg.Out.Items
		items := make([]list.Item, len(m.items))
		for i, it := range m.items {
			items[i] = buildItem{it: it}
		}
		return m, m.list.SetItems(items)

	case changedMsg:
		if msg.err != nil {
			m.note = theme.Bad.Render(msg.err.Error())
			return m, nil
		}
		return m, m.LoadCmd()

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		it, ok := m.list.SelectedItem().(buildItem)
		var dx, dy float64
		switch msg.String() {
		case "C":
			return m, m.change(m.port.Clear)
		case "h", "left":
			dx = -step
		case "l", "right":
			dx = step
		case "K":
			dy = -step
		case "J":
			dy = step
		}
		if ok && (dx != 0 || dy != 0) {
			return m, m.change(func(ctx context.Context) error {
				_, err := m.port.Move(ctx, it.it.ID, it.it.OffsetX+dx, it.it.OffsetY+dy)
				return err
			})
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	preview := m.preview(max(10, m.width-m.width/3-4), max(5, m.height-2))
	out := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), "  ", preview) + "\n"
	if m.note != "" {
		return out + m.note
	}
	return out + theme.Muted.Render("h/l/J/K: nudge  C: clear canvas")
}

// preview paints items back to front so higher z-indexes win.
func (m Model) preview(cols, rows int) string {
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, it := range m.items {
		style := lipgloss.NewStyle().Foreground(theme.Lavender)
		glyph := "▒"
		if it.Kind == "color" {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(it.Name))
			glyph = "█"
		}
		x0, y0 := int(math.Floor(it.OffsetX/cell)), int(math.Floor(it.OffsetY/cell/2))
		x1, y1 := x0+max(1, int(it.Width/cell)), y0+max(1, int(it.Height/cell/2))
		for r := max(0, y0); r < min(rows, y1); r++ {
			for c := max(0, x0); c < min(cols, x1); c++ {
				grid[r][c] = style.Render(glyph)
			}
		}
	}
	lines := make([]string, rows)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background())
		return LoadedMsg{Out: out, Err: err}
	}
}

// PlaceColorCmd adds a color block at the origin on top of the stack.
func (m Model) PlaceColorCmd(hex string, width, height float64) tea.Cmd {
	return m.change(func(ctx context.Context) error {
		_, err := m.port.Place(ctx, "", hex, width, height, 0, 0, 0)
		return err
	})
}

func (m Model) ClearCmd() tea.Cmd { return m.change(m.port.Clear) }

func (m Model) change(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg { return changedMsg{err: fn(context.Background())} }
}
