package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/inamate/inamate/surface-go/internal/geom"
	"github.com/inamate/inamate/surface-go/internal/items"
	"github.com/inamate/inamate/surface-go/internal/surface"
	"github.com/inamate/inamate/surface-go/internal/viewport"
)

var errUsage = errors.New("bad arguments")

// frameStep is the simulated time between ticks during wait.
const frameStep = 16 * time.Millisecond

// player replays a script against a surface on a simulated clock. Every
// command takes one millisecond and is followed by a tick.
type player struct {
	s    *surface.Surface
	size geom.Point
	now  time.Time
	last surface.Frame
	log  []surface.Event
}

func newPlayer(opts surface.Options) (*player, error) {
	p := &player{now: time.Unix(0, 0)}
	s, err := surface.New(opts, surface.WithListener(func(ev surface.Event) {
		p.log = append(p.log, ev)
	}))
	if err != nil {
		return nil, err
	}
	p.s = s
	return p, nil
}

// Run executes every line of a script. Blank lines and lines starting
// with # are skipped.
func (p *player) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if err := p.exec(words); err != nil {
			return fmt.Errorf("line %d: %s: %w", n, words[0], err)
		}
	}
	return sc.Err()
}

func (p *player) exec(words []string) error {
	cmd, args := words[0], words[1:]
	kv, pos := splitArgs(args)

	p.now = p.now.Add(time.Millisecond)
	var err error
	switch cmd {
	case "size":
		var v []float64
		if v, err = floats(pos, 2); err == nil {
			p.size = geom.Pt(v[0], v[1])
			p.s.Resize(p.size)
		}

	case "item":
		if len(pos) != 5 {
			return errUsage
		}
		var v []float64
		if v, err = floats(pos[1:], 4); err == nil {
			err = p.s.AddPlacement(items.PlacementOf(pos[0], geom.NewRect(v[0], v[1], v[2], v[3])))
		}

	case "path":
		err = p.addPath(pos)

	case "remove":
		if len(pos) != 1 {
			return errUsage
		}
		p.s.RemoveItem(pos[0])

	case "down", "move", "up", "cancel":
		var ev surface.PointerEvent
		if ev, err = p.pointer(pos, kv); err == nil {
			switch cmd {
			case "down":
				p.s.PointerDown(ev)
			case "move":
				p.s.PointerMove(ev)
			case "up":
				p.s.PointerUp(ev)
			default:
				p.s.PointerCancel(ev)
			}
		}

	case "wheel":
		var v []float64
		if v, err = floats(pos, 3); err == nil {
			mode := viewport.DeltaPixel
			switch kv["mode"] {
			case "line":
				mode = viewport.DeltaLine
			case "page":
				mode = viewport.DeltaPage
			}
			_, over := kv["minimap"]
			p.s.Wheel(surface.WheelEvent{DeltaY: v[0], Pos: geom.Pt(v[1], v[2]), Mode: mode, OverMinimap: over, Time: p.now})
		}

	case "key", "keyup":
		if len(pos) != 1 {
			return errUsage
		}
		_, alt := kv["alt"]
		_, ctrl := kv["ctrl"]
		ev := surface.KeyEvent{Key: pos[0], Alt: alt, Ctrl: ctrl, Time: p.now}
		if cmd == "key" {
			p.s.KeyDown(ev)
		} else {
			p.s.KeyUp(ev)
		}

	case "center":
		err = p.center(pos)

	case "dblclick":
		if len(pos) == 1 {
			p.s.DoubleClick(surface.TargetMoveHandle, pos[0])
		} else {
			p.s.DoubleClick(surface.TargetSurface, "")
		}

	case "focus":
		if len(pos) != 1 {
			return errUsage
		}
		p.s.Focus(pos[0])

	case "fullsize":
		if len(pos) == 1 {
			err = p.s.MakeFullSize(pos[0])
		} else {
			p.s.ExitFullSize()
		}

	case "wait":
		var v []float64
		if v, err = floats(pos, 1); err == nil {
			end := p.now.Add(time.Duration(v[0] * float64(time.Millisecond)))
			for p.now.Before(end) {
				p.now = p.now.Add(frameStep)
				p.last = p.s.Tick(p.now)
			}
		}

	default:
		return fmt.Errorf("unknown command")
	}
	if err != nil {
		return err
	}
	p.last = p.s.Tick(p.now)
	return nil
}

func (p *player) pointer(pos []string, kv map[string]string) (surface.PointerEvent, error) {
	if len(pos) != 3 {
		return surface.PointerEvent{}, errUsage
	}
	id, err := strconv.Atoi(pos[0])
	if err != nil {
		return surface.PointerEvent{}, fmt.Errorf("pointer id: %w", err)
	}
	v, err := floats(pos[1:], 2)
	if err != nil {
		return surface.PointerEvent{}, err
	}
	ev := surface.PointerEvent{ID: id, Pos: geom.Pt(v[0], v[1]), Buttons: surface.ButtonLeft, Time: p.now}
	_, ev.Ctrl = kv["ctrl"]
	_, ev.Alt = kv["alt"]
	if item, ok := kv["move"]; ok {
		ev.Target, ev.ItemID = surface.TargetMoveHandle, item
	}
	if item, ok := kv["resize"]; ok {
		ev.Target, ev.ItemID = surface.TargetResizeHandle, item
	}
	if _, ok := kv["minimap"]; ok {
		ev.Target = surface.TargetMinimap
	}
	return ev, nil
}

func (p *player) addPath(pos []string) error {
	if len(pos) < 3 {
		return errUsage
	}
	var pts []geom.Point
	for _, s := range pos[1:] {
		x, y, ok := strings.Cut(s, ",")
		if !ok {
			return fmt.Errorf("point %q: want x,y", s)
		}
		v, err := floats([]string{x, y}, 2)
		if err != nil {
			return err
		}
		pts = append(pts, geom.Pt(v[0], v[1]))
	}
	r := geom.RectFromPoints(pts[0], pts[0])
	for _, pt := range pts[1:] {
		r = r.Union(geom.RectFromPoints(pt, pt))
	}
	return p.s.AddItem(items.Item{ID: pos[0], Rect: r, Points: pts})
}

func (p *player) center(pos []string) error {
	if len(pos) == 0 {
		return errUsage
	}
	switch pos[0] {
	case "view":
		p.s.CenterView()
	case "item":
		if len(pos) != 2 {
			return errUsage
		}
		return p.s.CenterItem(pos[1])
	case "next", "prev":
		diff := 1
		if pos[0] == "prev" {
			diff = -1
		}
		p.s.CenterOtherItem(diff)
	case "rect":
		v, err := floats(pos[1:], 4)
		if err != nil {
			return err
		}
		p.s.CenterRect(geom.NewRect(v[0], v[1], v[2], v[3]))
	default:
		return errUsage
	}
	return nil
}

// splitArgs separates key=value and bare flag words (ctrl, alt, minimap)
// from positional arguments.
func splitArgs(args []string) (map[string]string, []string) {
	kv := make(map[string]string)
	var pos []string
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			kv[k] = v
			continue
		}
		switch a {
		case "ctrl", "alt", "minimap":
			kv[a] = ""
			continue
		}
		pos = append(pos, a)
	}
	return kv, pos
}

func floats(words []string, n int) ([]float64, error) {
	if len(words) != n {
		return nil, errUsage
	}
	out := make([]float64, n)
	for i, w := range words {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", w, err)
		}
		out[i] = v
	}
	return out, nil
}
