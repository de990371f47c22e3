package mapwidget

import (
	"context"
	"fmt"
	"sync"
)

// Command is one recorded map operation.
type Command struct {
	Op   string `json:"op"`
	ID   string `json:"id,omitempty"`
	Args any    `json:"args,omitempty"`
}

// Plan op codes, replayed by static/map.js.
const (
	OpCreateMap   = "createMap"
	OpLoaded      = "loaded"
	OpAddMarker   = "addMarker"
	OpAddPolyline = "addPolyline"
	OpHighlight   = "highlight"
	OpFlyTo       = "flyTo"
	OpFullscreen  = "fullscreen"
	OpRemove      = "remove"
)

// PlanEngine is an Engine that records every call as a Command instead of
// drawing. The map page embeds the recorded plan and the browser replays it
// against the real mapping library. Loading and style signals complete
// immediately.
type PlanEngine struct {
	mu       sync.Mutex
	commands []Command
	markers  int
	lines    int
}

func NewPlanEngine() *PlanEngine {
	return &PlanEngine{}
}

// Loader returns a Loader that hands out this engine.
func (e *PlanEngine) Loader() Loader {
	return func(ctx context.Context) (Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Commands returns a copy of the recorded plan.
func (e *PlanEngine) Commands() []Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Command, len(e.commands))
	copy(out, e.commands)
	return out
}

func (e *PlanEngine) record(c Command) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, c)
}

func (e *PlanEngine) CreateMap(ctx context.Context, opts MapOptions) (Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.record(Command{Op: OpCreateMap, Args: opts})
	return &planMap{engine: e}, nil
}

type planMap struct {
	engine *PlanEngine
}

func (m *planMap) Loaded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.engine.record(Command{Op: OpLoaded})
	return nil
}

func (m *planMap) AddMarker(opts MarkerOptions) (Marker, error) {
	e := m.engine
	e.mu.Lock()
	e.markers++
	id := fmt.Sprintf("marker-%d", e.markers)
	e.commands = append(e.commands, Command{Op: OpAddMarker, ID: id, Args: opts})
	e.mu.Unlock()
	return &planMarker{engine: e, id: id}, nil
}

func (m *planMap) AddPolyline(opts PolylineOptions) error {
	e := m.engine
	e.mu.Lock()
	e.lines++
	id := fmt.Sprintf("line-%d", e.lines)
	e.commands = append(e.commands, Command{Op: OpAddPolyline, ID: id, Args: opts})
	e.mu.Unlock()
	return nil
}

func (m *planMap) FlyTo(camera Camera) {
	m.engine.record(Command{Op: OpFlyTo, Args: camera})
}

func (m *planMap) SetFullscreen(ctx context.Context, on bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.engine.record(Command{Op: OpFullscreen, Args: on})
	return nil
}

func (m *planMap) Remove() {
	m.engine.record(Command{Op: OpRemove})
}

type planMarker struct {
	engine *PlanEngine
	id     string
}

func (k *planMarker) SetHighlighted(on bool) {
	k.engine.record(Command{Op: OpHighlight, ID: k.id, Args: on})
}
