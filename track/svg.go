package track

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"topdownracer/vec"
)

// CommandKind is the type of a path command after normalization
type CommandKind int

const (
	Move CommandKind = iota
	Line
	Quad
	Cubic
	Close
)

func (k CommandKind) String() string {
	switch k {
	case Move:
		return "M"
	case Line:
		return "L"
	case Quad:
		return "Q"
	case Cubic:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// Command is one absolute path segment. Control points are only meaningful
// for Quad (Control1) and Cubic (Control1, Control2).
type Command struct {
	Kind     CommandKind
	Control1 vec.Vec2D
	Control2 vec.Vec2D
	To       vec.Vec2D
}

var (
	errEmptyPath    = errors.New("empty path")
	errMissingStart = errors.New("path does not start with a move")
)

const pathAlphabet = "MmLlHhVvCcSsQqTtAaZz0123456789.,+-eE \t\r\n"

// ParsePath compiles an SVG path d attribute into absolute commands.
// Relative forms and H/V are resolved by the SVG compiler; smooth curves
// and arcs come back as quadratic or cubic segments.
func ParsePath(d string) ([]Command, error) {
	if strings.TrimSpace(d) == "" {
		return nil, &ConfigurationError{Op: "parse path", Err: errEmptyPath}
	}
	if i := strings.IndexFunc(d, func(r rune) bool { return !strings.ContainsRune(pathAlphabet, r) }); i >= 0 {
		return nil, &ConfigurationError{Op: "parse path", Err: fmt.Errorf("unexpected character %q at %d", d[i], i)}
	}

	var cursor oksvg.PathCursor
	if err := cursor.CompilePath(d); err != nil {
		return nil, &ConfigurationError{Op: "parse path", Err: err}
	}

	commands, err := decodePath(cursor.Path)
	if err != nil {
		return nil, &ConfigurationError{Op: "parse path", Err: err}
	}
	if len(commands) == 0 {
		return nil, &ConfigurationError{Op: "parse path", Err: errEmptyPath}
	}
	if commands[0].Kind != Move {
		return nil, &ConfigurationError{Op: "parse path", Err: errMissingStart}
	}
	return commands, nil
}

func decodePath(path rasterx.Path) ([]Command, error) {
	var commands []Command
	var start vec.Vec2D

	point := func(i int) vec.Vec2D {
		return vec.Vec2D{X: fromFixed(path[i]), Y: fromFixed(path[i+1])}
	}
	need := func(i, n int) error {
		if i+n >= len(path) {
			return fmt.Errorf("truncated segment at %d", i)
		}
		return nil
	}

	for i := 0; i < len(path); {
		switch rasterx.PathCommand(path[i]) {
		case rasterx.PathMoveTo:
			if err := need(i, 2); err != nil {
				return nil, err
			}
			start = point(i + 1)
			commands = append(commands, Command{Kind: Move, To: start})
			i += 3
		case rasterx.PathLineTo:
			if err := need(i, 2); err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: Line, To: point(i + 1)})
			i += 3
		case rasterx.PathQuadTo:
			if err := need(i, 4); err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: Quad, Control1: point(i + 1), To: point(i + 3)})
			i += 5
		case rasterx.PathCubicTo:
			if err := need(i, 6); err != nil {
				return nil, err
			}
			commands = append(commands, Command{
				Kind:     Cubic,
				Control1: point(i + 1),
				Control2: point(i + 3),
				To:       point(i + 5),
			})
			i += 7
		case rasterx.PathClose:
			commands = append(commands, Command{Kind: Close, To: start})
			i++
		default:
			return nil, fmt.Errorf("unknown path command %d at %d", path[i], i)
		}
	}
	return commands, nil
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
