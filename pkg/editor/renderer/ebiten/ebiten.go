package ebiten

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"

	"kmap/pkg/editor/group"
	"kmap/pkg/editor/render"
	"kmap/pkg/editor/session"
	"kmap/pkg/engine/grid"
	"kmap/pkg/engine/input"
	"kmap/pkg/engine/palette"
)

// Options configures the editor window
type Options struct {
	Title      string
	Width      int
	Height     int
	Background palette.RGB
	Logger     *slog.Logger
}

// Window is the ebiten game that hosts one editor session
type Window struct {
	editor     *session.Editor
	title      string
	background palette.RGB
	logger     *slog.Logger
	fonts      *fonts
	input      inputState

	windowWidth        int
	windowHeight       int
	windowOpenedLogged bool
}

// New creates a window for ed. The window is not shown until Run.
func New(ed *session.Editor, opts Options) (*Window, error) {
	f, err := newFonts()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 600
	}
	w := &Window{
		editor:       ed,
		title:        opts.Title,
		background:   opts.Background,
		logger:       logger,
		fonts:        f,
		input:        newInputState(),
		windowWidth:  opts.Width,
		windowHeight: opts.Height,
	}
	w.centerMap()
	return w, nil
}

// Run opens the window and blocks until it is closed or the user quits
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.windowWidth, w.windowHeight)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update handles input (Ebiten interface)
func (w *Window) Update() error {
	if !w.windowOpenedLogged {
		w.windowOpenedLogged = true
		ww, wh := ebiten.WindowSize()
		w.logger.Info("window opened", "width", ww, "height", wh)
	}

	w.handleInput()
	w.centerMap()

	if w.editor.Quit() {
		w.logger.Info("quit requested")
		return ebiten.Termination
	}
	return nil
}

// Layout returns the logical screen size (Ebiten interface)
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.windowWidth || outsideHeight != w.windowHeight {
		w.windowWidth = outsideWidth
		w.windowHeight = outsideHeight
		w.centerMap()
	}
	return outsideWidth, outsideHeight
}

// statusHeight is the space reserved below the map for the status lines
func (w *Window) statusHeight() float64 {
	lines := len(w.editor.Messages) + 1
	return float64(lines)*(uiFontSize+statusLineGap) + 2*statusPadding
}

// centerMap places the map in the middle of the area above the status lines
func (w *Window) centerMap() {
	m := w.editor.Model()
	extent := render.Resolve(m, render.Options{}).Extent()
	avail := grid.Point{X: float64(w.windowWidth), Y: float64(w.windowHeight) - w.statusHeight()}
	m.SetPosition(grid.Point{
		X: max(0, (avail.X-extent.X)/2),
		Y: max(0, (avail.Y-extent.Y)/2),
	})
}

// Draw renders the map, the status lines and the help overlay (Ebiten interface)
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(w.background.RGBA())
	s := &surface{dst: screen, fonts: w.fonts}

	render.DrawMap(s, w.editor.Model(), render.Options{})
	w.drawStatus(s)
	if w.editor.ShowHelp() {
		w.drawHelp(s)
	}
}

func (w *Window) drawStatus(s *surface) {
	lineHeight := float64(uiFontSize + statusLineGap)
	y := float64(w.windowHeight) - statusPadding

	m := w.editor.Model()
	swatch := grid.Point{X: statusPadding, Y: y - swatchSize}
	s.DrawRect(swatch, grid.Point{X: swatchSize, Y: swatchSize}, render.RectOptions{
		Filled:    true,
		FillColor: w.editor.Color(),
	})
	status := gotext.Get("%d variables  %s  %d groups  ? for help",
		m.VariableCount(), snapLabel(w.editor), m.GroupCount())
	if w.editor.Pending() {
		status += "  " + gotext.Get("(enter to keep, esc to drop)")
	}
	textColor := colorStatusText
	if w.editor.Pending() {
		textColor = colorPending
	}
	s.DrawText(status, grid.Point{X: statusPadding + swatchSize + 6, Y: y}, render.TextOptions{
		AlignV: render.AlignBottom,
		Color:  textColor,
		Size:   uiFontSize,
	})

	for i := len(w.editor.Messages) - 1; i >= 0; i-- {
		y -= lineHeight
		s.DrawText(w.editor.Messages[i], grid.Point{X: statusPadding, Y: y}, render.TextOptions{
			AlignV: render.AlignBottom,
			Color:  colorSubtle,
			Size:   uiFontSize,
		})
	}
}

func snapLabel(ed *session.Editor) string {
	if ed.SnapMode() == group.SnapNone {
		return gotext.Get("free-size")
	}
	return gotext.Get("power-of-two")
}

// helpLines lists every bound action with its keys, sorted by action
func helpLines() []string {
	byAction := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	lines := []string{
		gotext.Get("drag: select a group"),
		gotext.Get("click: toggle a cell"),
		gotext.Get("right click or ctrl+click: remove a group"),
		gotext.Get("shift+drag: free-size group"),
	}
	for _, a := range actions {
		lines = append(lines, fmt.Sprintf("%s: %s", input.ActionName(a), strings.Join(byAction[a], ", ")))
	}
	return lines
}

func (w *Window) drawHelp(s *surface) {
	lines := helpLines()
	lineHeight := float64(uiFontSize + statusLineGap)

	width := 0.0
	for _, l := range lines {
		width = max(width, s.MeasureTextWidth(l, uiFontSize))
	}
	size := grid.Point{X: width + 2*helpPadding, Y: float64(len(lines))*lineHeight + 2*helpPadding}
	pos := grid.Point{
		X: max(0, (float64(w.windowWidth)-size.X)/2),
		Y: max(0, (float64(w.windowHeight)-size.Y)/2),
	}

	s.DrawRect(pos, size, render.RectOptions{
		Filled:       true,
		FillColor:    colorPanelBackground,
		StrokeColor:  colorPanelBorder,
		StrokeWidth:  2,
		Rounded:      [4]bool{true, true, true, true},
		CornerRadius: helpCornerSize,
	})

	for i, l := range lines {
		s.DrawText(l, grid.Point{X: pos.X + helpPadding, Y: pos.Y + helpPadding + float64(i)*lineHeight}, render.TextOptions{
			AlignV: render.AlignTop,
			Color:  colorStatusText,
			Size:   uiFontSize,
		})
	}
}
