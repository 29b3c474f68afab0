package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	inventorydto "focusflow/internal/modules/inventory/dto"
	"focusflow/internal/ui/theme"
	"focusflow/internal/ui/views"
)

type Port interface {
	Catalog(ctx context.Context) ([]inventorydto.CatalogItemOutput, error)
	Buy(ctx context.Context, itemID string, quantity int) (inventorydto.PurchaseOutput, error)
	UseIcon(ctx context.Context, itemID string) error
	ResetIcon(ctx context.Context) error
}

type LoadedMsg struct {
	Items []inventorydto.CatalogItemOutput
	Err   error
}

// PurchasedMsg reports a buy. The root model refreshes the balance on it.
type PurchasedMsg struct {
	Out inventorydto.PurchaseOutput
	Err error
}

type iconMsg struct {
	note string
	err  error
}

type catalogItem struct{ it inventorydto.CatalogItemOutput }

func (i catalogItem) Title() string {
	return fmt.Sprintf("%s  %d coins", i.it.Name, i.it.Price)
}

func (i catalogItem) Description() string {
	if i.it.Owned > 0 {
		return fmt.Sprintf("owned %d  %s", i.it.Owned, i.it.Description)
	}
	return i.it.Description
}

func (i catalogItem) FilterValue() string { return i.it.ID + " " + i.it.Name }

type Model struct {
	port Port
	list list.Model
	note string
}

func New(port Port) Model {
	return Model{port: port, list: views.NewList("Store")}
}

func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd { return m.LoadCmd() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.note = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		items := make([]list.Item, len(msg.Items))
		for i, it := range msg.Items {
			items[i] = catalogItem{it: it}
		}
		return m, m.list.SetItems(items)

	case PurchasedMsg:
		if msg.Err != nil {
			m.note = theme.Bad.Render(msg.Err.Error())
			return m, nil
		}
		m.note = theme.Good.Render(fmt.Sprintf("Bought %d x %s for %d coins. %d left.", msg.Out.Quantity, msg.Out.ItemID, msg.Out.Spent, msg.Out.Remaining))
		return m, m.LoadCmd()

	case iconMsg:
		if msg.err != nil {
			m.note = theme.Bad.Render(msg.err.Error())
		} else {
			m.note = theme.Good.Render(msg.note)
		}
		return m, nil

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		it, ok := m.list.SelectedItem().(catalogItem)
		switch msg.String() {
		case "enter":
			if ok {
				return m, m.BuyCmd(it.it.ID, 1)
			}
		case "u":
			if ok && it.it.AppIcon != "" {
				return m, m.iconCmd("Icon set to "+it.it.AppIcon+".", func(ctx context.Context) error { return m.port.UseIcon(ctx, it.it.ID) })
			}
		case "U":
			return m, m.iconCmd("Icon reset.", m.port.ResetIcon)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	out := m.list.View() + "\n"
	if m.note != "" {
		return out + m.note
	}
	return out + theme.Muted.Render("enter: buy one  u: use icon  U: reset icon")
}

func (m Model) LoadCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.Catalog(context.Background())
		return LoadedMsg{Items: items, Err: err}
	}
}

func (m Model) BuyCmd(itemID string, quantity int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Buy(context.Background(), itemID, quantity)
		return PurchasedMsg{Out: out, Err: err}
	}
}

func (m Model) iconCmd(note string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return iconMsg{note: note, err: fn(context.Background())}
	}
}
