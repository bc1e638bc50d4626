// Package session turns pointer and key input into edits of one map.
package session

import (
	"github.com/leonelquinteros/gotext"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/model"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/input"
	"kmap/pkg/engine/palette"
)

const maxMessages = 5

// Zoom bounds the cell size
type Zoom struct {
	Step float64
	Min  float64
	Max  float64
}

// DefaultZoom is used when a zero Zoom is configured
var DefaultZoom = Zoom{Step: 4, Min: 8, Max: 128}

// Hooks are the side effects the editor asks its host to perform
type Hooks struct {
	// Save writes the map to its file
	Save func(m *model.Model) error
	// Export renders the map to an image
	Export func(m *model.Model) error
	// Zoomed is told the new cell size so it can be remembered
	Zoomed func(cellSize float64)
}

// Options configures a new Editor
type Options struct {
	Snap     group.Snap
	Colors   []palette.RGB
	VarNames []string
	Zoom     Zoom
	Hooks    Hooks
}

type drag struct {
	active      bool
	start       grid.Cell
	startOnGrid bool
	preview     bool
	mode        group.Snap
}

// Editor owns one model and applies user input to it
type Editor struct {
	model    *model.Model
	colors   *palette.Cycle
	snap     group.Snap
	freeSize bool
	names    []string
	zoom     Zoom
	hooks    Hooks

	pointers *input.PointerTracker
	drag     drag
	// pending is set while the last group is an unconfirmed preview
	pending bool

	Messages []string
	showHelp bool
	quit     bool
}

// New creates an editor for m
func New(m *model.Model, opts Options) *Editor {
	names := opts.VarNames
	if len(names) < grid.MaxVariables {
		names = model.DefaultVarNames
	}
	zoom := opts.Zoom
	if zoom.Step <= 0 {
		zoom = DefaultZoom
	}
	return &Editor{
		model:    m,
		colors:   palette.NewCycle(opts.Colors),
		snap:     opts.Snap,
		names:    append([]string(nil), names...),
		zoom:     zoom,
		hooks:    opts.Hooks,
		pointers: input.NewPointerTracker(),
		Messages: make([]string, 0),
	}
}

// Model returns the edited map
func (e *Editor) Model() *model.Model {
	return e.model
}

// AddMessage adds a message to the status log
func (e *Editor) AddMessage(msg string) {
	e.Messages = append(e.Messages, msg)

	// Keep only the last maxMessages
	if len(e.Messages) > maxMessages {
		e.Messages = e.Messages[len(e.Messages)-maxMessages:]
	}
}

// Color returns the color the next group will use
func (e *Editor) Color() palette.RGB {
	return e.colors.Current()
}

// SnapMode returns the snapping used for new groups
func (e *Editor) SnapMode() group.Snap {
	if e.freeSize {
		return group.SnapNone
	}
	return e.snap
}

// Pending reports whether the last group is an unconfirmed preview
func (e *Editor) Pending() bool {
	return e.pending
}

// ShowHelp reports whether the key help should be drawn
func (e *Editor) ShowHelp() bool {
	return e.showHelp
}

// Quit reports whether the user asked to leave
func (e *Editor) Quit() bool {
	return e.quit
}

// PointerDown starts a selection, or deletes the group under the pointer
// for a secondary press. Presses from a second pointer are ignored while
// one is already tracked.
func (e *Editor) PointerDown(id input.PointerID, pos grid.Point, button input.Button, mods input.Modifiers) {
	if !e.pointers.Down(id) {
		return
	}
	cell := e.model.ScreenToCell(pos)

	if button == input.ButtonSecondary || mods.Ctrl {
		e.pointers.End()
		if !e.model.OnGrid(pos) {
			return
		}
		if e.pending {
			e.cancelPending()
		}
		if e.model.RemoveGroupAt(cell.X, cell.Y) {
			e.AddMessage(gotext.Get("Group removed"))
		}
		return
	}

	mode := e.SnapMode()
	if mods.Shift {
		mode = group.SnapNone
	}
	e.drag = drag{
		active:      true,
		start:       cell,
		startOnGrid: e.model.OnGrid(pos),
		mode:        mode,
	}
}

// PointerMove updates the group preview while a selection is in progress
func (e *Editor) PointerMove(id input.PointerID, pos grid.Point) {
	if !e.pointers.Move(id) || !e.drag.active {
		return
	}
	cell := e.model.ScreenToCell(pos)
	if !e.drag.preview && cell == e.drag.start {
		return
	}
	e.updatePreview(cell)
}

func (e *Editor) updatePreview(cell grid.Cell) {
	if !e.drag.preview {
		e.drag.preview = true
		if !e.pending {
			e.model.AddGroup(e.drag.start, cell, e.Color(), e.drag.mode)
			e.pending = true
			return
		}
	}
	e.model.ReplaceLastGroup(e.drag.start, cell, e.Color(), e.drag.mode)
}

// PointerUp ends a selection. A press and release on the same grid cell
// without dragging toggles that cell's output bit.
func (e *Editor) PointerUp(id input.PointerID, pos grid.Point) {
	if !e.pointers.Up(id) || !e.drag.active {
		return
	}
	d := e.drag
	e.drag = drag{}

	if d.preview {
		e.model.ReplaceLastGroup(d.start, e.model.ScreenToCell(pos), e.Color(), d.mode)
		return
	}
	if d.startOnGrid && e.model.OnGrid(pos) && e.model.ScreenToCell(pos) == d.start {
		e.model.ToggleOutput(d.start.X, d.start.Y)
	}
}

// Handle applies a key intent
func (e *Editor) Handle(in input.Intent) {
	switch in.Action {
	case input.ActionConfirm:
		e.confirm()
	case input.ActionCancel:
		if e.pending {
			e.cancelPending()
			e.AddMessage(gotext.Get("Group discarded"))
		} else if e.showHelp {
			e.showHelp = false
		}
	case input.ActionClearGroups:
		e.endDrag()
		e.pending = false
		e.model.ClearGroups()
		e.AddMessage(gotext.Get("All groups cleared"))
	case input.ActionNextColor:
		e.recolor(e.colors.Advance())
	case input.ActionSelectColor:
		if e.colors.Select(in.Index) {
			e.recolor(e.colors.Current())
		}
	case input.ActionToggleSnap:
		e.freeSize = !e.freeSize
		if e.freeSize {
			e.AddMessage(gotext.Get("Free-size groups"))
		} else {
			e.AddMessage(gotext.Get("Power-of-two groups"))
		}
	case input.ActionVariables:
		e.changeVariables(in.Index)
	case input.ActionZoomIn:
		e.setCellSize(e.model.CellSize() + e.zoom.Step)
	case input.ActionZoomOut:
		e.setCellSize(e.model.CellSize() - e.zoom.Step)
	case input.ActionSave:
		e.runHook(e.hooks.Save, gotext.Get("Map saved"), gotext.Get("Save failed"))
	case input.ActionExport:
		e.runHook(e.hooks.Export, gotext.Get("Image exported"), gotext.Get("Export failed"))
	case input.ActionHelp:
		e.showHelp = !e.showHelp
	case input.ActionQuit:
		e.quit = true
	}
}

func (e *Editor) confirm() {
	if !e.pending {
		return
	}
	e.endDrag()
	e.pending = false
	e.colors.Advance()
	e.AddMessage(gotext.Get("Group added (%d total)", e.model.GroupCount()))
}

func (e *Editor) cancelPending() {
	e.endDrag()
	e.model.RemoveLastGroup()
	e.pending = false
}

func (e *Editor) endDrag() {
	if e.drag.active {
		e.pointers.End()
	}
	e.drag = drag{}
}

// recolor applies a newly picked color to the preview, if there is one
func (e *Editor) recolor(c palette.RGB) {
	if !e.pending {
		return
	}
	groups := e.model.Groups()
	last := groups[len(groups)-1]
	size := e.model.Size()
	end := grid.Cell{
		X: grid.Wrap(last.X+last.Width-1, size.Cols),
		Y: grid.Wrap(last.Y+last.Height-1, size.Rows),
	}
	e.model.ReplaceLastGroup(last.Origin(), end, c, group.SnapNone)
}

func (e *Editor) changeVariables(count int) {
	if count == e.model.VariableCount() {
		return
	}
	e.endDrag()
	if err := e.model.ChangeVariableCount(count, e.varNames(count), true); err != nil {
		e.AddMessage(gotext.Get("Cannot use %d variables: %v", count, err))
		return
	}
	e.pending = false
	e.AddMessage(gotext.Get("Map now has %d variables", count))
}

// varNames keeps the map's own names and takes missing ones from the defaults
func (e *Editor) varNames(count int) []string {
	names := e.model.VarNames()
	for i := len(names); i < count && i < len(e.names); i++ {
		names = append(names, e.names[i])
	}
	return names
}

func (e *Editor) setCellSize(size float64) {
	size = min(max(size, e.zoom.Min), e.zoom.Max)
	if size == e.model.CellSize() {
		return
	}
	e.model.SetCellSize(size)
	if e.hooks.Zoomed != nil {
		e.hooks.Zoomed(size)
	}
}

func (e *Editor) runHook(hook func(*model.Model) error, ok, failed string) {
	if hook == nil {
		return
	}
	if err := hook(e.model); err != nil {
		e.AddMessage(failed + ": " + err.Error())
		return
	}
	e.AddMessage(ok)
}
