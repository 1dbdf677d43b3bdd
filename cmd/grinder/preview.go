package main

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"grinder/pkg/integrator"
	gmath "grinder/pkg/math"
	"grinder/pkg/ppm"
	"grinder/pkg/scene"
)

// previewGame blits a snapshot of the in-progress framebuffer every frame
// while the integrator's worker pool fills it in the background.
type previewGame struct {
	width, height int
	mu            *sync.Mutex
	frame         *image.RGBA
}

func (g *previewGame) Update() error { return nil }

func (g *previewGame) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	defer g.mu.Unlock()
	screen.WritePixels(g.frame.Pix)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// renderWithPreview runs the integrator against a shared ppm.Image while
// an Ebitengine window polls that same image and displays it. Workers
// only ever write distinct pixels, so the poller can read concurrently
// without its own lock on the ppm.Image; the mutex here only protects the
// RGBA conversion buffer the Ebitengine draw call reads from.
func renderWithPreview(sc *scene.Scene, accel integrator.Intersector, opt integrator.Options) (*ppm.Image, error) {
	width, height := sc.Camera.ResX, sc.Camera.ResY
	opt.Image = ppm.NewImage(width, height)
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	var mu sync.Mutex

	var img *ppm.Image
	var renderErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		img, renderErr = integrator.Render(context.Background(), sc, accel, opt)
	}()

	stop := make(chan struct{})
	go pollFramebuffer(opt.Image, &mu, frame, stop, done)

	game := &previewGame{width: width, height: height, mu: &mu, frame: frame}
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Grinder Live Preview")
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("preview window closed: %v", err)
	}
	close(stop)

	<-done
	return img, renderErr
}

func pollFramebuffer(src *ppm.Image, mu *sync.Mutex, frame *image.RGBA, stop, done <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	copyFrame := func() {
		mu.Lock()
		defer mu.Unlock()
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				writeRGBA(frame, x, y, src.At(x, y))
			}
		}
	}

	for {
		select {
		case <-done:
			copyFrame()
			return
		case <-stop:
			return
		case <-ticker.C:
			copyFrame()
		}
	}
}

func writeRGBA(frame *image.RGBA, x, y int, c gmath.Vector3) {
	i := frame.PixOffset(x, y)
	frame.Pix[i+0] = toByte(c.X)
	frame.Pix[i+1] = toByte(c.Y)
	frame.Pix[i+2] = toByte(c.Z)
	frame.Pix[i+3] = 255
}

func toByte(v float64) byte {
	v = gmath.Clamp(v, 0, 1)
	return byte(v * 255)
}
