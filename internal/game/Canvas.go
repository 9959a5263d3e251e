package game

// Color is a terminal color code understood by lipgloss ("34", "#ff00ff", ...).
type Color string

// Handle identifies something drawn on a Canvas. The zero Handle is never issued.
type Handle uint64

// Canvas is what the round needs from a renderer. Implementations must be safe for
// a reader on another goroutine if they are rendered concurrently.
type Canvas interface {
	DrawSegment(cell Cell, color Color) Handle
	RemoveSegment(h Handle)
	DrawPellet(cell Cell) Handle
	RemovePellet(h Handle)
	DrawText(cell Cell, text string) Handle
	RemoveText(h Handle)
	ClearAll()
}

// NopCanvas draws nothing.
type NopCanvas struct {
	next Handle
}

func (c *NopCanvas) issue() Handle {
	c.next++
	return c.next
}

func (c *NopCanvas) DrawSegment(Cell, Color) Handle { return c.issue() }
func (c *NopCanvas) RemoveSegment(Handle)           {}
func (c *NopCanvas) DrawPellet(Cell) Handle         { return c.issue() }
func (c *NopCanvas) RemovePellet(Handle)            {}
func (c *NopCanvas) DrawText(Cell, string) Handle   { return c.issue() }
func (c *NopCanvas) RemoveText(Handle)              {}
func (c *NopCanvas) ClearAll()                      {}
