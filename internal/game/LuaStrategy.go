package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

const luaSteerFunction = "steer"

// LuaStrategy steers with a script defining
//
//	function steer(head, pellet, heading, board) return {Dx=.., Dy=..} end
//
// head and pellet are {Col, Row}, heading is {Dx, Dy}, board is {Width, Height}.
// Returning nil keeps the current heading. Failures fall back to Fallback for that tick.
type LuaStrategy struct {
	Fallback HeadingStrategy

	luaState *lua.LState
	steerFn  lua.LValue
}

func NewLuaStrategy(source string, fallback HeadingStrategy) (*LuaStrategy, error) {
	if fallback == nil {
		fallback = defaultStrategy
	}

	luaState := lua.NewState()
	if err := luaState.DoString(source); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy definition: %w", err)
	}

	steerFn := luaState.GetGlobal(luaSteerFunction)
	if steerFn.Type() != lua.LTFunction {
		luaState.Close()
		return nil, errors.New("lua strategy does not define function " + luaSteerFunction)
	}

	return &LuaStrategy{
		Fallback: fallback,
		luaState: luaState,
		steerFn:  steerFn,
	}, nil
}

func LoadLuaStrategy(path string, fallback HeadingStrategy) (*LuaStrategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua strategy %s: %w", path, err)
	}
	return NewLuaStrategy(string(source), fallback)
}

func (s *LuaStrategy) Name() string { return "lua" }

func (s *LuaStrategy) Steer(e *Entity, pellet Cell) {
	heading, keep, err := s.nextHeading(e, pellet)
	if err != nil {
		log.Warn("Lua strategy failed, using fallback", "error", err, "fallback", s.Fallback.Name())
		s.Fallback.Steer(e, pellet)
		return
	}
	if !keep {
		e.SetHeading(heading)
	}
}

func (s *LuaStrategy) Close() {
	s.luaState.Close()
}

func (s *LuaStrategy) nextHeading(e *Entity, pellet Cell) (Heading, bool, error) {
	board := e.Bounds()
	err := s.luaState.CallByParam(lua.P{Fn: s.steerFn, NRet: 1, Protect: true},
		s.cellTable(e.Head()),
		s.cellTable(pellet),
		s.headingTable(e.Heading()),
		s.boardTable(board),
	)
	if err != nil {
		return Heading{}, false, fmt.Errorf("could not execute lua strategy: %w", err)
	}

	luaReturn := s.luaState.Get(-1)
	s.luaState.Pop(1)

	if luaReturn == lua.LNil {
		return Heading{}, true, nil
	}

	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Heading{}, false, errors.New("lua return value was type " + luaReturn.Type().String() + ", expected table")
	}

	heading := convertLuaHeadingTable(luaTable)
	if !isUnitHeading(heading) {
		return Heading{}, false, fmt.Errorf("lua returned invalid heading %+v", heading)
	}
	return heading, false, nil
}

func (s *LuaStrategy) cellTable(c Cell) *lua.LTable {
	tbl := s.luaState.NewTable()
	tbl.RawSetString("Col", lua.LNumber(c.Col))
	tbl.RawSetString("Row", lua.LNumber(c.Row))
	return tbl
}

func (s *LuaStrategy) headingTable(h Heading) *lua.LTable {
	tbl := s.luaState.NewTable()
	tbl.RawSetString("Dx", lua.LNumber(h.Dx))
	tbl.RawSetString("Dy", lua.LNumber(h.Dy))
	return tbl
}

func (s *LuaStrategy) boardTable(b Board) *lua.LTable {
	tbl := s.luaState.NewTable()
	tbl.RawSetString("Width", lua.LNumber(b.Width))
	tbl.RawSetString("Height", lua.LNumber(b.Height))
	return tbl
}

func convertLuaHeadingTable(luaTbl *lua.LTable) Heading {
	result := Heading{}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		}
	})
	return result
}

func isUnitHeading(h Heading) bool {
	for _, candidate := range Headings {
		if h == candidate {
			return true
		}
	}
	return false
}
