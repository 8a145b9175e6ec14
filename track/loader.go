package track

import (
	"encoding/json"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"topdownracer/geom"
	"topdownracer/vec"
)

// Descriptor is the on-disk track definition. Image paths are relative to the
// descriptor. Start angles are in degrees.
type Descriptor struct {
	Name                        string  `json:"name"`
	Map                         string  `json:"map"`
	CheckPointPath              string  `json:"checkPointPath"`
	ColliderImage               string  `json:"colliderImage"`
	OpenedShortcutColliderImage string  `json:"openedShortcutColliderImage,omitempty"`
	Traction                    float64 `json:"traction"`
	IsRainy                     bool    `json:"isRainy,omitempty"`
	Scale                       float64 `json:"scale,omitempty"`
	CellSize                    float64 `json:"cellSize,omitempty"`
	PointOffset                 int     `json:"pointOffset"`
	PathOffset                  struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"pathOffset"`
	Canvas struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"canvas"`
	Grid           *GridSize `json:"grid,omitempty"`
	StartPositions []struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Angle float64 `json:"angle"`
	} `json:"startPositions"`
}

// GridSize resamples collider images to a fixed number of cells
type GridSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadFile reads a descriptor and its collider images from disk
func LoadFile(filename string) (*Track, error) {
	return Load(os.DirFS(filepath.Dir(filename)), filepath.Base(filename))
}

// Load reads the descriptor name from fsys and builds the track
func Load(fsys fs.FS, name string) (*Track, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ConfigurationError{Op: "load track", Name: name, Err: errors.Wrapf(err, "could not read descriptor (%s)", name)}
	}

	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &ConfigurationError{Op: "load track", Name: name, Err: errors.Wrap(err, "could not decode descriptor")}
	}
	if d.CheckPointPath == "" || d.ColliderImage == "" {
		return nil, &ConfigurationError{Op: "load track", Name: name, Err: errors.New("descriptor needs checkPointPath and colliderImage")}
	}

	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	cellSize := d.CellSize
	if cellSize == 0 {
		cellSize = scale
	}

	dir := path.Dir(name)
	base, err := loadMask(fsys, path.Join(dir, d.ColliderImage), cellSize, d.Grid)
	if err != nil {
		return nil, &ConfigurationError{Op: "load track", Name: name, Err: err}
	}
	var shortcut *geom.Mask
	if d.OpenedShortcutColliderImage != "" {
		shortcut, err = loadMask(fsys, path.Join(dir, d.OpenedShortcutColliderImage), cellSize, d.Grid)
		if err != nil {
			return nil, &ConfigurationError{Op: "load track", Name: name, Err: err}
		}
	}

	checkpoints, err := NewTrackPathFromSVG(d.CheckPointPath, PathOptions{
		CanvasWidth:  d.Canvas.Width,
		CanvasHeight: d.Canvas.Height,
		Offset:       vec.Vec2D{X: d.PathOffset.X, Y: d.PathOffset.Y},
		Scale:        scale,
		PointOffset:  d.PointOffset,
	})
	if err != nil {
		return nil, err
	}

	starts := make([]StartPosition, len(d.StartPositions))
	for i, s := range d.StartPositions {
		starts[i] = StartPosition{Position: vec.Vec2D{X: s.X, Y: s.Y}, Angle: vec.Radians(s.Angle)}
	}

	t := New(d.Name, d.Map, d.Traction, checkpoints, base, shortcut, starts)
	t.IsRainy = d.IsRainy
	return t, nil
}

func loadMask(fsys fs.FS, name string, cellSize float64, grid *GridSize) (*geom.Mask, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open collider image (%s)", name)
	}
	defer f.Close()

	width, height := 0, 0
	if grid != nil {
		width, height = grid.Width, grid.Height
	}
	mask, err := DecodeMask(f, cellSize, width, height)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode collider image (%s)", name)
	}
	return mask, nil
}

// DecodeMask decodes a collider image into a mask. When width and height are
// set the image is resampled to that grid and the cell size grows by the
// same factor.
func DecodeMask(r io.Reader, cellSize float64, width, height int) (*geom.Mask, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return MaskFromImage(img, cellSize, width, height), nil
}

// MaskFromImage classifies every pixel of img
func MaskFromImage(img image.Image, cellSize float64, width, height int) *geom.Mask {
	bounds := img.Bounds()
	src := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)

	if width > 0 && height > 0 && (width != bounds.Dx() || height != bounds.Dy()) {
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		cellSize *= float64(bounds.Dx()) / float64(width)
		src = dst
	}

	size := src.Bounds().Size()
	mask := geom.NewMask(size.X, size.Y, cellSize)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c := src.NRGBAAt(x, y)
			mask.Cells[y][x] = geom.MapPixelToCollisionType(c.R, c.G, c.B, c.A)
		}
	}
	return mask
}

// MaskImage renders a mask back into an image, walls red, grass green,
// water blue, free cells transparent
func MaskImage(m *geom.Mask) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for y, row := range m.Cells {
		for x, v := range row {
			img.SetNRGBA(x, y, cellColor(v))
		}
	}
	return img
}

func cellColor(v uint8) color.NRGBA {
	switch v {
	case geom.CellWall:
		return color.NRGBA{R: 255, A: 255}
	case geom.CellGrass:
		return color.NRGBA{G: 255, A: 255}
	case geom.CellWater:
		return color.NRGBA{B: 255, A: 255}
	case geom.CellOther:
		return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	default:
		return color.NRGBA{}
	}
}
