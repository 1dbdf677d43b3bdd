// Package texture implements the UV-to-RGB lookup primitives read via an
// optional texture reference, and the P3 ASCII PPM reader that backs it.
package texture

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/mmap"

	gmath "grinder/pkg/math"
)

// Texture is a raster image of linear-space RGB triples, row-major, origin
// top-left, sampled by fractional UV coordinates.
type Texture struct {
	Width, Height int
	Pixels        []gmath.Vector3
}

// Sample looks up the nearest texel for (u, v), each expected in [0, 1];
// out-of-range values wrap, which keeps tiled UVs (e.g. a sphere's seam)
// well-defined.
func (t *Texture) Sample(u, v float64) gmath.Vector3 {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return gmath.Vector3{}
	}
	x := wrapIndex(int(u*float64(t.Width)), t.Width)
	y := wrapIndex(int((1-v)*float64(t.Height)), t.Height)
	return t.Pixels[y*t.Width+x]
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Load reads a P3 ASCII PPM file. It opens the file through
// golang.org/x/exp/mmap rather than os.ReadFile so that a scene with many
// large textures does not duplicate each file's bytes on the Go heap
// before the P3 scanner has even consumed them: the mmap.ReaderAt backs an
// io.SectionReader that bufio.Scanner tokenizes directly.
func Load(path string) (*Texture, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer ra.Close()

	sr := io.NewSectionReader(ra, 0, int64(ra.Len()))
	tok := newPPMTokenizer(sr)

	magic, err := tok.next()
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("texture: %s: unsupported PPM magic %q", path, magic)
	}

	width, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("texture: %s: width: %w", path, err)
	}
	height, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("texture: %s: height: %w", path, err)
	}
	maxVal, err := tok.nextInt()
	if err != nil {
		return nil, fmt.Errorf("texture: %s: maxval: %w", path, err)
	}
	if maxVal <= 0 {
		maxVal = 255
	}

	pixels := make([]gmath.Vector3, width*height)
	for i := range pixels {
		r, err := tok.nextInt()
		if err != nil {
			return nil, fmt.Errorf("texture: %s: pixel %d: %w", path, i, err)
		}
		g, err := tok.nextInt()
		if err != nil {
			return nil, fmt.Errorf("texture: %s: pixel %d: %w", path, i, err)
		}
		b, err := tok.nextInt()
		if err != nil {
			return nil, fmt.Errorf("texture: %s: pixel %d: %w", path, i, err)
		}
		pixels[i] = gmath.Vector3{
			X: float64(r) / float64(maxVal),
			Y: float64(g) / float64(maxVal),
			Z: float64(b) / float64(maxVal),
		}
	}

	return &Texture{Width: width, Height: height, Pixels: pixels}, nil
}

// ppmTokenizer strips '#' comments and splits on whitespace, which is all
// the P3 grammar requires.
type ppmTokenizer struct {
	scanner *bufio.Scanner
	pending []string
}

func newPPMTokenizer(r io.Reader) *ppmTokenizer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &ppmTokenizer{scanner: s}
}

func (p *ppmTokenizer) next() (string, error) {
	for len(p.pending) == 0 {
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line := p.scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		p.pending = strings.Fields(line)
	}
	tok := p.pending[0]
	p.pending = p.pending[1:]
	return tok, nil
}

func (p *ppmTokenizer) nextInt() (int, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(tok, "%d", &v); err != nil {
		return 0, fmt.Errorf("expected integer, got %q", tok)
	}
	return v, nil
}
