// Package integrator implements the parallel per-pixel render loop: a
// dynamic row scheduler over a worker pool, jittered sampling, and
// per-worker random number generation.
package integrator

import (
	"context"
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/sync/errgroup"

	"grinder/pkg/camera"
	gmath "grinder/pkg/math"
	"grinder/pkg/ppm"
	"grinder/pkg/progress"
	"grinder/pkg/scene"
	"grinder/pkg/tracer"
)

// rowChunk is the unit of work handed to a worker: chunk size of about 4
// rows tolerates variable per-pixel cost better than a single static
// partition of rows per worker.
const rowChunk = 4

// Options configures a render.
type Options struct {
	PixelSamples  int
	ShadowSamples int
	EnableEffects bool // motion blur + depth of field
	Workers       int  // max concurrent row chunks; 0 leaves the errgroup unlimited (one goroutine per chunk)
	Progress      *progress.Reporter

	// Seed overrides the nondeterministic per-render seed. Zero means draw
	// one from crypto/rand; callers that must compare two renders pixel
	// for pixel (e.g. BVH on vs. off) pass the same nonzero Seed to both.
	Seed uint32

	// Image, if non-nil, is filled in place instead of a freshly allocated
	// one. A caller that wants to poll the framebuffer mid-render (a live
	// preview window) supplies its own Image and reads it concurrently;
	// distinct pixels are never written by more than one worker, so this
	// is safe without extra locking.
	Image *ppm.Image
}

// Intersector is the ray-query surface the tracer needs; satisfied by
// *geometry.BVH or by a linear scan for BVH-equivalence testing.
type Intersector = tracer.Intersector

// Render fills and returns an Image by tracing every pixel of sc's
// camera. Workers share the scene, accelerator and camera read-only; the
// image is partitioned by row, so distinct workers never write the same
// slice element. A worker error aborts the whole render: renders are
// best-effort, not partial-output.
func Render(ctx context.Context, sc *scene.Scene, accel Intersector, opt Options) (*ppm.Image, error) {
	width, height := sc.Camera.ResX, sc.Camera.ResY
	img := opt.Image
	if img == nil {
		img = ppm.NewImage(width, height)
	}

	tr := &tracer.Tracer{Scene: sc, Accel: accel, ShadowSamples: opt.ShadowSamples}

	g, gctx := errgroup.WithContext(ctx)
	if opt.Workers > 0 {
		g.SetLimit(opt.Workers)
	}

	workerSeed := opt.Seed
	if workerSeed == 0 {
		workerSeed = randomSeed()
	}

	for y0 := 0; y0 < height; y0 += rowChunk {
		y0 := y0
		y1 := y0 + rowChunk
		if y1 > height {
			y1 = height
		}
		chunkIndex := uint32(y0 / rowChunk)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := gmath.NewXorShift32(workerSeed ^ chunkIndex)

			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					img.Set(x, y, renderPixel(tr, sc.Camera, x, y, opt, rng))
				}
				if opt.Progress != nil {
					opt.Progress.RowDone()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

func renderPixel(tr *tracer.Tracer, cam camera.Camera, x, y int, opt Options, rng *gmath.XorShift32) gmath.Vector3 {
	var sum gmath.Vector3
	samples := opt.PixelSamples
	if samples < 1 {
		samples = 1
	}

	for s := 0; s < samples; s++ {
		dx := rng.Float64()
		dy := rng.Float64()
		px := float64(x) + dx
		py := float64(y) + dy

		var ray gmath.Ray
		if opt.EnableEffects {
			timeOffset := cam.GetTimeOffset(rng)
			lensPos := cam.SampleLensPosition(rng)
			ray = cam.PixelToRayWithEffects(px, py, timeOffset, lensPos)
		} else {
			ray = cam.PixelToRay(px, py)
		}

		sum = sum.Add(tr.Trace(ray, 0, rng))
	}

	return sum.Div(float64(samples))
}

// randomSeed draws a nondeterministic 32-bit seed; each row chunk XORs its
// own chunk index into this value, so renders are not bit-reproducible
// across runs by design.
func randomSeed() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0x9e3779b9
	}
	return binary.LittleEndian.Uint32(buf[:])
}
