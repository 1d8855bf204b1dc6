package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/profile"
)

const switchModeLabel = "switch mode"

// Grid rows after the operator slots.
const (
	gridStartRow  = operator.SlotCount
	gridSwitchRow = operator.SlotCount + 1
	gridRowCount  = operator.SlotCount + 2
)

type menuState struct {
	mode     profile.Mode
	profiles []profile.Profile
	// cursor indexes profiles; len(profiles) is the switch mode item.
	cursor int
	custom profile.Custom
	row    int
}

func newMenuState(sel profile.Selection) menuState {
	ms := menuState{
		mode:     sel.Mode,
		profiles: profile.Profiles(),
		custom:   sel.Custom,
	}
	for i, p := range ms.profiles {
		if p.Tier == sel.Tier {
			ms.cursor = i
		}
	}
	if !ms.enabled(ms.cursor) {
		ms.cursor = 0
	}
	return ms
}

func (ms *menuState) enabled(i int) bool {
	if i == len(ms.profiles) {
		return true
	}
	return i >= 0 && i < len(ms.profiles) && ms.profiles[i].Enabled
}

// moveTier moves the tier cursor, skipping disabled tiers.
func (ms *menuState) moveTier(delta int) {
	count := len(ms.profiles) + 1
	next := ms.cursor
	for i := 0; i < count; i++ {
		next = (next + delta + count) % count
		if ms.enabled(next) {
			ms.cursor = next
			return
		}
	}
}

func rowSelectable(row int) bool {
	if row < operator.SlotCount {
		return operator.Operator(row).Selectable()
	}
	return row < gridRowCount
}

// moveRow moves the grid cursor, skipping the reserved slot.
func (ms *menuState) moveRow(delta int) {
	next := ms.row
	for i := 0; i < gridRowCount; i++ {
		next = (next + delta + gridRowCount) % gridRowCount
		if rowSelectable(next) {
			ms.row = next
			return
		}
	}
}

// setLevel changes the level of the operator under the cursor.
func (ms *menuState) setLevel(level int) {
	if ms.row >= operator.SlotCount || !operator.Operator(ms.row).Selectable() {
		return
	}
	if level < 0 {
		level = 0
	}
	if level > profile.MaxLevel {
		level = profile.MaxLevel
	}
	ms.custom[ms.row] = level
}

func (ms *menuState) switchMode() {
	if ms.mode == profile.ModeTiered {
		ms.mode = profile.ModeCustom
		ms.row = 0
		return
	}
	ms.mode = profile.ModeTiered
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "q" || msg.Type == tea.KeyEsc {
		return tea.Quit
	}
	if msg.String() == "s" {
		m.menu.switchMode()
		return nil
	}
	if m.menu.mode == profile.ModeCustom {
		return m.updateGrid(msg)
	}
	switch msg.String() {
	case "up", "k":
		m.menu.moveTier(-1)
	case "down", "j":
		m.menu.moveTier(1)
	case "enter", " ":
		if m.menu.cursor == len(m.menu.profiles) {
			m.menu.switchMode()
			return nil
		}
		sel, err := profile.ForTier(m.menu.profiles[m.menu.cursor].Tier)
		if err != nil {
			m.showError(err)
			return nil
		}
		return m.startSession(sel)
	}
	return nil
}

func (m *Model) updateGrid(msg tea.KeyMsg) tea.Cmd {
	ms := &m.menu
	switch key := msg.String(); key {
	case "up", "k":
		ms.moveRow(-1)
	case "down", "j":
		ms.moveRow(1)
	case "left", "h":
		if ms.row < operator.SlotCount {
			ms.setLevel(ms.custom[ms.row] - 1)
		}
	case "right", "l":
		if ms.row < operator.SlotCount {
			ms.setLevel(ms.custom[ms.row] + 1)
		}
	case "x", "0":
		ms.setLevel(0)
	case "1", "2", "3", "4", "5":
		ms.setLevel(int(key[0] - '0'))
	case "enter", " ":
		switch ms.row {
		case gridSwitchRow:
			ms.switchMode()
		case gridStartRow:
			if !ms.custom.Ready() {
				return nil
			}
			sel, err := profile.ForCustom(ms.custom)
			if err != nil {
				m.showError(err)
				return nil
			}
			return m.startSession(sel)
		}
	}
	return nil
}

func (m *Model) viewMenu() string {
	var body string
	if m.menu.mode == profile.ModeCustom {
		body = m.viewGrid()
	} else {
		body = m.viewTiers()
	}
	lines := []string{titleStyle.Render("Mental Maths"), "", body, ""}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	help := "up/down: move  enter: start  s: switch mode  q: quit"
	if m.menu.mode == profile.ModeCustom {
		help = "up/down: operator  left/right or 0-5: level  enter: start  s: switch mode  q: quit"
	}
	lines = append(lines, footerStyle.Render(help))
	return strings.Join(lines, "\n")
}

func (m *Model) viewTiers() string {
	ms := m.menu
	lines := make([]string, 0, len(ms.profiles)+1)
	for i, p := range ms.profiles {
		label := fmt.Sprintf("%-9s %s", p.Tier, p.Label)
		if !p.Enabled {
			lines = append(lines, "  "+disabledStyle.Render(label+" (coming soon)"))
			continue
		}
		lines = append(lines, menuLine(label, i == ms.cursor))
	}
	lines = append(lines, menuLine(switchModeLabel, ms.cursor == len(ms.profiles)))
	return strings.Join(lines, "\n")
}

func (m *Model) viewGrid() string {
	ms := m.menu
	lines := make([]string, 0, gridRowCount)
	for _, op := range operator.Slots() {
		row := int(op)
		name := fmt.Sprintf("%-4s %s", op.Symbol(), op.Name())
		if !op.Selectable() {
			lines = append(lines, "  "+disabledStyle.Render(fmt.Sprintf("%-10s %s", name, levelCells(-1))))
			continue
		}
		cells := levelCells(ms.custom[row])
		if row == ms.row {
			lines = append(lines, selectedStyle.Render("> "+fmt.Sprintf("%-10s", name))+" "+cells)
		} else {
			lines = append(lines, "  "+cursorRowStyle.Render(fmt.Sprintf("%-10s", name))+" "+cells)
		}
	}
	lines = append(lines, "")
	start := "start"
	if !ms.custom.Ready() {
		if ms.row == gridStartRow {
			lines = append(lines, "> "+disabledStyle.Render(start))
		} else {
			lines = append(lines, "  "+disabledStyle.Render(start))
		}
	} else {
		lines = append(lines, menuLine(start, ms.row == gridStartRow))
	}
	lines = append(lines, menuLine(switchModeLabel, ms.row == gridSwitchRow))
	return strings.Join(lines, "\n")
}

// levelCells renders the x/1..5 level picker; a negative level disables it.
func levelCells(level int) string {
	cells := make([]string, 0, profile.MaxLevel+1)
	for l := 0; l <= profile.MaxLevel; l++ {
		label := "x"
		if l > 0 {
			label = fmt.Sprintf("%d", l)
		}
		switch {
		case level < 0:
			cells = append(cells, disabledStyle.Render(" "+label+" "))
		case l == level:
			cells = append(cells, levelOnStyle.Render("["+label+"]"))
		default:
			cells = append(cells, levelStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(cells, "")
}

func menuLine(label string, selected bool) string {
	if selected {
		return selectedStyle.Render("> " + label)
	}
	return "  " + itemStyle.Render(label)
}
