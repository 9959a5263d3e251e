package ui

import (
	"sort"
	"strings"
	"sync"

	"github.com/Mshel/snakeduel/internal/game"
	"github.com/charmbracelet/lipgloss"
)

type itemKind int

const (
	segmentItem itemKind = iota
	pelletItem
	textItem
)

type canvasItem struct {
	kind  itemKind
	cell  game.Cell
	color game.Color
	text  string
}

var (
	segmentRune = "██"
	pelletRune  = "()"
	voidCell    = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render("  ")
	pelletStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(string(game.PelletColor))).Bold(true)
	textStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color(string(game.TextColor))).Bold(true)
)

// TerminalCanvas keeps drawn items by handle. The engine goroutine draws,
// the bubbletea goroutine renders.
type TerminalCanvas struct {
	mu    sync.RWMutex
	board game.Board
	next  game.Handle
	items map[game.Handle]canvasItem
}

func NewTerminalCanvas(board game.Board) *TerminalCanvas {
	return &TerminalCanvas{
		board: board,
		items: make(map[game.Handle]canvasItem),
	}
}

func (c *TerminalCanvas) add(item canvasItem) game.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.items[c.next] = item
	return c.next
}

func (c *TerminalCanvas) remove(h game.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, h)
}

func (c *TerminalCanvas) DrawSegment(cell game.Cell, color game.Color) game.Handle {
	return c.add(canvasItem{kind: segmentItem, cell: cell, color: color})
}

func (c *TerminalCanvas) RemoveSegment(h game.Handle) { c.remove(h) }

func (c *TerminalCanvas) DrawPellet(cell game.Cell) game.Handle {
	return c.add(canvasItem{kind: pelletItem, cell: cell})
}

func (c *TerminalCanvas) RemovePellet(h game.Handle) { c.remove(h) }

func (c *TerminalCanvas) DrawText(cell game.Cell, text string) game.Handle {
	return c.add(canvasItem{kind: textItem, cell: cell, text: text})
}

func (c *TerminalCanvas) RemoveText(h game.Handle) { c.remove(h) }

func (c *TerminalCanvas) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[game.Handle]canvasItem)
}

func (c *TerminalCanvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Render draws the board two columns per cell. Later handles paint over earlier ones
// and text rows are laid over the grid centred on their row.
func (c *TerminalCanvas) Render() string {
	c.mu.RLock()
	handles := make([]game.Handle, 0, len(c.items))
	for h := range c.items {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	cells := make(map[game.Cell]canvasItem)
	texts := make(map[int]string)
	for _, h := range handles {
		item := c.items[h]
		if item.kind == textItem {
			texts[item.cell.Row] = item.text
			continue
		}
		cells[item.cell] = item
	}
	c.mu.RUnlock()

	rowWidth := c.board.Width * 2
	var sb strings.Builder
	for row := 0; row < c.board.Height; row++ {
		if text, ok := texts[row]; ok {
			sb.WriteString(textStyle.Width(rowWidth).MaxWidth(rowWidth).Align(lipgloss.Center).Render(text))
		} else {
			c.renderRow(&sb, cells, row)
		}
		if row < c.board.Height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (c *TerminalCanvas) renderRow(sb *strings.Builder, cells map[game.Cell]canvasItem, row int) {
	for col := 0; col < c.board.Width; col++ {
		item, ok := cells[game.Cell{Col: col, Row: row}]
		switch {
		case !ok:
			sb.WriteString(voidCell)
		case item.kind == pelletItem:
			sb.WriteString(pelletStyle.Render(pelletRune))
		default:
			colorStyle := lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color(string(item.color)))
			sb.WriteString(colorStyle.Render(segmentRune))
		}
	}
}
