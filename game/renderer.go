package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"topdownracer/geom"
	"topdownracer/track"
	"topdownracer/vec"
)

// Camera represents the viewport into the world
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := (wy-c.Y)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (sy-c.Height/2)/c.Zoom + c.Y
	return wx, wy
}

// Follow eases the camera towards a target
func (c *Camera) Follow(target vec.Vec2D, factor float64) {
	c.X += (target.X - c.X) * factor
	c.Y += (target.Y - c.Y) * factor
}

// GetVisibleCells returns the occupied cells visible in the camera viewport
func (c *Camera) GetVisibleCells(world *World) []*Cell {
	cells := make([]*Cell, 0, 16)

	minX, minY := c.ScreenToWorld(0, 0)
	maxX, maxY := c.ScreenToWorld(c.Width, c.Height)

	// Expand bounds by cell size to include partially visible cells
	minX -= world.Config.CellSize
	minY -= world.Config.CellSize
	maxX += world.Config.CellSize
	maxY += world.Config.CellSize

	minCellX, minCellY := world.WorldToCell(minX, minY)
	maxCellX, maxCellY := world.WorldToCell(maxX, maxY)

	for x := minCellX; x <= maxCellX; x++ {
		for y := minCellY; y <= maxCellY; y++ {
			cell := world.GetCell(x, y)
			if cell != nil && len(cell.Bodies()) > 0 {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// DebugState holds the debug overlay toggles of one game
type DebugState struct {
	ShowPaths   bool // Checkpoints and opponent lookahead windows
	ShowHidden  bool // Surface patches that are normally invisible
	ShowGrid    bool // Broadphase cells
	ShowActions bool // Last opponent decisions
}

const hudPrecision = 10 * time.Millisecond

var (
	playerColor   = color.RGBA{0, 220, 90, 255}
	opponentColor = color.RGBA{230, 60, 50, 255}
	ghostColor    = color.RGBA{200, 200, 255, 120}
	traceColor    = color.RGBA{30, 30, 30, 255}
	pathColor     = color.RGBA{255, 255, 255, 90}
	windowColor   = color.RGBA{255, 160, 0, 200}
	gridColor     = color.RGBA{80, 80, 120, 120}
)

// Renderer draws a race as a debug view: the occupancy mask, effects, skid
// traces and car colliders, plus a text HUD
type Renderer struct {
	camera *Camera
	masks  map[*geom.Mask]*ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
		masks:  make(map[*geom.Mask]*ebiten.Image),
	}
}

// Render draws the whole race
func (r *Renderer) Render(screen *ebiten.Image, race *Race, debug *DebugState) {
	r.renderTrack(screen, race.Track)
	if debug.ShowGrid {
		r.renderGrid(screen, race.World)
	}
	if debug.ShowPaths {
		r.renderPath(screen, race.Track.Path.Points, pathColor)
		for _, o := range race.Opponents {
			r.renderPath(screen, o.Policy.Path.ActualPath, windowColor)
		}
	}
	for _, e := range race.Effects {
		if e.Config().Hidden && !debug.ShowHidden {
			continue
		}
		r.RenderEffect(screen, e)
	}

	bodies := make([]*Body, 0, len(race.World.Bodies))
	for _, cell := range r.camera.GetVisibleCells(race.World) {
		bodies = append(bodies, cell.Bodies()...)
	}
	for _, b := range bodies {
		r.renderTraces(screen, b, race.Now())
	}
	for _, b := range bodies {
		if b.Invisible || b.Progress.Finished {
			continue
		}
		r.RenderBody(screen, b)
	}

	r.renderHUD(screen, race, debug)
}

func (r *Renderer) renderTrack(screen *ebiten.Image, t *track.Track) {
	mask := t.Mask()
	img, ok := r.masks[mask]
	if !ok {
		img = ebiten.NewImageFromImage(track.MaskImage(mask))
		r.masks[mask] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(mask.Scale*r.camera.Zoom, mask.Scale*r.camera.Zoom)
	sx, sy := r.camera.WorldToScreen(0, 0)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(img, op)
}

func (r *Renderer) renderGrid(screen *ebiten.Image, world *World) {
	size := world.Config.CellSize
	for x := 0; x <= world.Config.CellCountX(); x++ {
		r.line(screen, vec.New(float64(x)*size, 0), vec.New(float64(x)*size, world.Config.WorldHeight), 1, gridColor)
	}
	for y := 0; y <= world.Config.CellCountY(); y++ {
		r.line(screen, vec.New(0, float64(y)*size), vec.New(world.Config.WorldWidth, float64(y)*size), 1, gridColor)
	}
}

func (r *Renderer) renderPath(screen *ebiten.Image, points []track.CheckPoint, clr color.Color) {
	for i := 1; i < len(points); i++ {
		r.line(screen, points[i-1].Point, points[i].Point, 1, clr)
	}
}

// RenderEffect outlines an effect collider in the kind's color
func (r *Renderer) RenderEffect(screen *ebiten.Image, e *EffectObject) {
	corners := e.Corners()
	r.polygon(screen, corners, e.Config().Color)
}

// RenderBody draws a car collider with a heading tick
func (r *Renderer) RenderBody(screen *ebiten.Image, b *Body) {
	clr := color.Color(opponentColor)
	switch {
	case b.Ghost:
		clr = ghostColor
	case b.IsPlayerControlled:
		clr = playerColor
	}
	r.polygon(screen, b.Corners(), clr)
	nose := vec.Add(b.Position, vec.FromAngle(b.Width, b.Angle))
	r.line(screen, b.Position, nose, 2, clr)
}

// renderTraces joins consecutive skid marks, fading with age
func (r *Renderer) renderTraces(screen *ebiten.Image, b *Body, now time.Duration) {
	for i := 1; i < len(b.Traces); i++ {
		prev, cur := b.Traces[i-1], b.Traces[i]
		clr := traceColor
		clr.A = uint8(float64(clr.A) * cur.Alpha(now))
		if clr.A == 0 {
			continue
		}
		r.line(screen, prev.Left, cur.Left, 2, clr)
		r.line(screen, prev.Right, cur.Right, 2, clr)
	}
}

func (r *Renderer) polygon(screen *ebiten.Image, corners [4]vec.Vec2D, clr color.Color) {
	for i := range corners {
		r.line(screen, corners[i], corners[(i+1)%len(corners)], 2, clr)
	}
}

func (r *Renderer) line(screen *ebiten.Image, from, to vec.Vec2D, width float32, clr color.Color) {
	x0, y0 := r.camera.WorldToScreen(from.X, from.Y)
	x1, y1 := r.camera.WorldToScreen(to.X, to.Y)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
}

func (r *Renderer) renderHUD(screen *ebiten.Image, race *Race, debug *DebugState) {
	pb := race.Player.Body
	var hud strings.Builder
	fmt.Fprintf(&hud, "Lap %d/%d  Speed %.0f  Checkpoint %d/%d\n",
		min(pb.Progress.Lap+1, race.Config.Laps), race.Config.Laps, pb.Speed(),
		race.Scoreboard.Checkpoint(), race.Track.Path.Len())
	fmt.Fprintf(&hud, "Time %v  Best %v  Nitro %s\n",
		(race.Now() - pb.Progress.LapStart).Truncate(hudPrecision), pb.Progress.BestLap.Truncate(hudPrecision), nitroLabel(pb.Nitro()))
	if tags := pb.Effects.Tags(); len(tags) > 0 {
		names := make([]string, len(tags))
		for i, tag := range tags {
			names[i] = string(tag)
		}
		fmt.Fprintf(&hud, "Effects %s\n", strings.Join(names, ", "))
	}
	if debug.ShowActions {
		for _, o := range race.Opponents {
			a := o.LastAction
			fmt.Fprintf(&hud, "%s: visited %d acc=%t brake=%t rot=%.3f attack=%t\n",
				o.Body.Name, o.Policy.Path.VisitedCheckpoints, a.Accelerate, a.Brake, a.Rotation, o.Policy.Attacking())
		}
	}
	ebitenutil.DebugPrint(screen, hud.String())

	if label := race.Countdown.Label(); label != "" {
		ebitenutil.DebugPrintAt(screen, label, int(r.camera.Width/2), int(r.camera.Height/2))
	}
	if outcome, ok := race.Outcome(); ok {
		r.renderOutcome(screen, outcome)
	}
}

func (r *Renderer) renderOutcome(screen *ebiten.Image, outcome *RaceOutcome) {
	var out strings.Builder
	fmt.Fprintf(&out, "Race over: %s\n", outcome.Reason)
	for i, s := range outcome.Standings {
		status := "DNF"
		if s.Finished {
			status = s.FinishTime.Truncate(hudPrecision).String()
		}
		fmt.Fprintf(&out, "%d. %-14s %s\n", i+1, s.Name, status)
	}
	if outcome.PerfectRun {
		out.WriteString("Perfect run!\n")
	}
	out.WriteString("Press R to race again")
	ebitenutil.DebugPrintAt(screen, out.String(), int(r.camera.Width/2)-100, int(r.camera.Height/2)-60)
}

func nitroLabel(s NitroState) string {
	switch s {
	case NitroActive:
		return "ON"
	case NitroCooldown:
		return "cooling"
	default:
		return "ready"
	}
}
