// Package loader reads frame-sequence files into leader tracks and point-cloud
// frame sets.
//
// A sequence is addressed by a path pattern and an inclusive frame range:
// frame i lives in "<pattern>.<iiii><ext>", zero padded to four digits. A
// range with end 0 names the single file at pattern itself.
//
// Each frame file is TOML:
//
//	vertices = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0], [0.0, 1.0, 0.0]]
//	faces = [[0, 1, 2]]
//
// Faces are emitted vertex by vertex in order; without faces the vertices are
// emitted as listed.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"flockfx/internal/core"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultExt is appended to every numbered frame path.
const DefaultExt = ".toml"

var (
	// ErrEmptyRange is returned when end precedes start.
	ErrEmptyRange = errors.New("loader: empty frame range")
	// ErrNoVertices is returned for a frame without points.
	ErrNoVertices = errors.New("loader: frame has no vertices")
	// ErrFaceIndex is returned when a face references a missing vertex.
	ErrFaceIndex = errors.New("loader: face index out of range")
)

// Options controls how frames are read.
type Options struct {
	// Ext is the extension of numbered frame files.
	Ext string
	// Root is prepended to relative patterns.
	Root string
	// ZUp converts Z-up source coordinates to the Y-up scene convention.
	ZUp bool
	// KeepScale disables unit scaling.
	KeepScale bool
}

// Loader resolves tracks and frame sets from disk. It satisfies core.Resources.
type Loader struct {
	opts     Options
	readFile func(string) ([]byte, error)
}

// New returns a loader reading from the local filesystem.
func New(opts Options) *Loader {
	if opts.Ext == "" {
		opts.Ext = DefaultExt
	}
	return &Loader{opts: opts, readFile: os.ReadFile}
}

type frameDoc struct {
	Vertices [][3]float64 `toml:"vertices"`
	Faces    [][3]int     `toml:"faces"`
}

// SequencePaths lists the files of frames start..end inclusive.
func SequencePaths(pattern string, start, end int, ext string) []string {
	if start == 0 && end == 0 {
		return []string{pattern}
	}
	if end < start {
		return nil
	}
	paths := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		paths = append(paths, fmt.Sprintf("%s.%04d%s", pattern, i, ext))
	}
	return paths
}

// Frames loads frames start..end. All frames share the scale of the first so
// the animation does not pulse.
func (l *Loader) Frames(pattern string, start, end int) (core.FrameSet, error) {
	if l.opts.Root != "" && !filepath.IsAbs(pattern) {
		pattern = filepath.Join(l.opts.Root, pattern)
	}
	paths := SequencePaths(pattern, start, end, l.opts.Ext)
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s [%d, %d]", ErrEmptyRange, pattern, start, end)
	}
	frames := make(core.FrameSet, 0, len(paths))
	for _, path := range paths {
		raw, err := l.readRaw(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, core.Frame{Raw: raw})
	}
	if !l.opts.KeepScale {
		scale := Extent(frames[0].Raw)
		if scale > 0 {
			for i := range frames {
				for j := range frames[i].Raw {
					frames[i].Raw[j] = frames[i].Raw[j].Mul(1 / scale)
				}
			}
		}
	}
	for i := range frames {
		frames[i].Points = Unique(frames[i].Raw)
	}
	return frames, nil
}

// Track loads frames start..end and returns the centroid of each one.
func (l *Loader) Track(pattern string, start, end int) (core.Track, error) {
	frames, err := l.Frames(pattern, start, end)
	if err != nil {
		return nil, err
	}
	track := make(core.Track, len(frames))
	for i, f := range frames {
		var sum mgl64.Vec3
		for _, p := range f.Points {
			sum = sum.Add(p)
		}
		track[i] = sum.Mul(1 / float64(len(f.Points)))
	}
	return track, nil
}

func (l *Loader) readRaw(path string) ([]mgl64.Vec3, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	var doc frameDoc
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", path, err)
	}
	if len(doc.Vertices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVertices, path)
	}
	verts := make([]mgl64.Vec3, len(doc.Vertices))
	for i, v := range doc.Vertices {
		verts[i] = mgl64.Vec3(v)
		if l.opts.ZUp {
			verts[i] = mgl64.Vec3{v[0], v[2], -v[1]}
		}
	}
	if len(doc.Faces) == 0 {
		return verts, nil
	}
	raw := make([]mgl64.Vec3, 0, 3*len(doc.Faces))
	for fi, face := range doc.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(verts) {
				return nil, fmt.Errorf("%w: %s face %d vertex %d of %d", ErrFaceIndex, path, fi, idx, len(verts))
			}
			raw = append(raw, verts[idx])
		}
	}
	return raw, nil
}

// Unique returns the distinct points of raw in first-seen order.
func Unique(raw []mgl64.Vec3) []mgl64.Vec3 {
	seen := make(map[mgl64.Vec3]struct{}, len(raw))
	out := make([]mgl64.Vec3, 0, len(raw))
	for _, p := range raw {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Extent returns the largest side of the bounding box of points.
func Extent(points []mgl64.Vec3) float64 {
	if len(points) == 0 {
		return 0
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}
	size := hi.Sub(lo)
	return max(size[0], size[1], size[2])
}
