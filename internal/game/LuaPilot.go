package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	lua "github.com/yuin/gopher-lua"
)

const (
	luaEntryPoint = "nextDirection"
	// luaCallTimeout bounds one nextDirection call.
	luaCallTimeout = 50 * time.Millisecond
)

var errLuaPilotClosed = errors.New("lua pilot is closed")

// LuaPilot asks a Lua script for the next direction. The script defines
//
//	function nextDirection(state) ... return "up" end
//
// where state carries head, item, direction, body, width, height, score and
// growth. Returning nil or "none" keeps the current heading.
type LuaPilot struct {
	mu         sync.Mutex
	luaState   *lua.LState
	scriptPath string
	frame      *Frame
	closed     bool

	callTimeout time.Duration
}

// NewLuaPilot loads the script at path. Call Watch to reload it on change.
func NewLuaPilot(path string) (*LuaPilot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua script %s: %w", path, err)
	}
	pilot, err := NewLuaPilotFromSource(string(src))
	if err != nil {
		return nil, err
	}
	pilot.scriptPath = path
	return pilot, nil
}

func NewLuaPilotFromSource(src string) (*LuaPilot, error) {
	luaState, err := compileStrategy(src)
	if err != nil {
		return nil, err
	}
	return &LuaPilot{luaState: luaState, callTimeout: luaCallTimeout}, nil
}

func compileStrategy(src string) (*lua.LState, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(src); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy: %w", err)
	}
	if fn := luaState.GetGlobal(luaEntryPoint); fn.Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("lua strategy does not define %s()", luaEntryPoint)
	}
	return luaState, nil
}

// Reload recompiles the script from disk. A broken script keeps the old one.
func (p *LuaPilot) Reload() error {
	if p.scriptPath == "" {
		return errors.New("lua pilot has no script path")
	}
	src, err := os.ReadFile(p.scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read lua script %s: %w", p.scriptPath, err)
	}
	luaState, err := compileStrategy(string(src))
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		luaState.Close()
		return errLuaPilotClosed
	}
	old := p.luaState
	p.luaState = luaState
	p.mu.Unlock()
	old.Close()
	return nil
}

// Watch reloads the script whenever its file is written, until ctx is done.
func (p *LuaPilot) Watch(ctx context.Context) error {
	if p.scriptPath == "" {
		return errors.New("lua pilot has no script path")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create script watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(p.scriptPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", p.scriptPath, err)
	}
	target := filepath.Clean(p.scriptPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := p.Reload(); err != nil {
				log.Warn("Lua strategy reload failed, keeping previous version", "path", p.scriptPath, "error", err)
				continue
			}
			log.Info("Lua strategy reloaded", "path", p.scriptPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("Script watcher error", "error", err)
		}
	}
}

func (p *LuaPilot) Observe(frame Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame = &frame
}

func (p *LuaPilot) PollDirection() Direction {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.frame == nil || p.frame.Status != StatusPlaying {
		return None
	}
	dir, err := p.nextDirection(*p.frame)
	if err != nil {
		log.Warn("Lua strategy failed", "error", err)
		return None
	}
	return dir
}

func (p *LuaPilot) nextDirection(frame Frame) (Direction, error) {
	luaState := p.luaState
	ctx, cancel := context.WithTimeout(context.Background(), p.callTimeout)
	defer cancel()
	luaState.SetContext(ctx)
	defer luaState.RemoveContext()

	err := luaState.CallByParam(lua.P{
		Fn:      luaState.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, frameToLuaTable(luaState, frame))
	if err != nil && ctx.Err() != nil {
		return None, fmt.Errorf("lua strategy exceeded %s: %w", p.callTimeout, ctx.Err())
	}
	if err != nil {
		return None, fmt.Errorf("could not execute lua strategy: %w", err)
	}

	ret := luaState.Get(-1)
	luaState.Pop(1)
	if ret == lua.LNil {
		return None, nil
	}
	if ret.Type() != lua.LTString {
		return None, fmt.Errorf("lua strategy returned %s, expected string", ret.Type().String())
	}
	dir, ok := ParseDirection(lua.LVAsString(ret))
	if !ok {
		return None, fmt.Errorf("lua strategy returned unknown direction %q", lua.LVAsString(ret))
	}
	return dir, nil
}

// Close releases the Lua state. Later polls return None.
func (p *LuaPilot) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.luaState.Close()
}

func positionToLuaTable(luaState *lua.LState, pos Position) *lua.LTable {
	tbl := luaState.NewTable()
	tbl.RawSetString("x", lua.LNumber(pos.X))
	tbl.RawSetString("y", lua.LNumber(pos.Y))
	return tbl
}

func frameToLuaTable(luaState *lua.LState, frame Frame) *lua.LTable {
	state := luaState.NewTable()
	state.RawSetString("head", positionToLuaTable(luaState, frame.Head))
	state.RawSetString("item", positionToLuaTable(luaState, frame.Item))
	state.RawSetString("direction", lua.LString(frame.Direction.String()))
	state.RawSetString("width", lua.LNumber(frame.Board.Width()))
	state.RawSetString("height", lua.LNumber(frame.Board.Height()))
	state.RawSetString("score", lua.LNumber(frame.Score))
	state.RawSetString("growth", lua.LNumber(frame.Growth))

	body := luaState.NewTable()
	for _, seg := range frame.Body {
		if seg == Sentinel {
			continue
		}
		body.Append(positionToLuaTable(luaState, seg))
	}
	state.RawSetString("body", body)
	return state
}
