package game

import "time"

const (
	TestBoardWidth  = 20
	TestBoardHeight = 20
)

var testBoard = Board{Width: TestBoardWidth, Height: TestBoardHeight}

// scriptedRand replays values, then repeats the last one.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v % n
}

type canvasItem struct {
	kind  string
	cell  Cell
	color Color
	text  string
}

// recordingCanvas keeps the live items so tests can compare them with the model.
type recordingCanvas struct {
	next    Handle
	live    map[Handle]canvasItem
	clears  int
	removed int
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{live: make(map[Handle]canvasItem)}
}

func (c *recordingCanvas) add(item canvasItem) Handle {
	c.next++
	c.live[c.next] = item
	return c.next
}

func (c *recordingCanvas) remove(h Handle) {
	if _, ok := c.live[h]; ok {
		c.removed++
	}
	delete(c.live, h)
}

func (c *recordingCanvas) DrawSegment(cell Cell, color Color) Handle {
	return c.add(canvasItem{kind: "segment", cell: cell, color: color})
}
func (c *recordingCanvas) RemoveSegment(h Handle) { c.remove(h) }
func (c *recordingCanvas) DrawPellet(cell Cell) Handle {
	return c.add(canvasItem{kind: "pellet", cell: cell})
}
func (c *recordingCanvas) RemovePellet(h Handle) { c.remove(h) }
func (c *recordingCanvas) DrawText(cell Cell, text string) Handle {
	return c.add(canvasItem{kind: "text", cell: cell, text: text})
}
func (c *recordingCanvas) RemoveText(h Handle) { c.remove(h) }
func (c *recordingCanvas) ClearAll() {
	c.clears++
	c.live = make(map[Handle]canvasItem)
}

func (c *recordingCanvas) count(kind string, color Color) int {
	n := 0
	for _, item := range c.live {
		if item.kind == kind && (color == "" || item.color == color) {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) texts() []string {
	var out []string
	for _, item := range c.live {
		if item.kind == "text" {
			out = append(out, item.text)
		}
	}
	return out
}

type scheduledCall struct {
	delay time.Duration
	fn    func()
}

// fakeScheduler stores callbacks until the test fires them.
type fakeScheduler struct {
	calls []scheduledCall
}

func (s *fakeScheduler) ScheduleAfter(d time.Duration, fn func()) {
	s.calls = append(s.calls, scheduledCall{delay: d, fn: fn})
}

func (s *fakeScheduler) last() scheduledCall {
	return s.calls[len(s.calls)-1]
}

// fire runs the most recent callback.
func (s *fakeScheduler) fire() {
	s.last().fn()
}

// testEntity builds an entity with an explicit body, head first.
func testEntity(heading Heading, body ...Cell) *Entity {
	e := NewEntity("test", HumanColor, testBoard, body[0], heading, nil)
	e.segments = append([]Cell(nil), body...)
	return e
}

// holdStrategy never changes the heading.
type holdStrategy struct{}

func (holdStrategy) Steer(*Entity, Cell) {}
func (holdStrategy) Name() string        { return "hold" }
