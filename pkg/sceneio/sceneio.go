// Package sceneio loads the line-oriented ASCII scene description format
// into a scene.Scene: a Camera block, PointLight/Sphere/Plane/Cube blocks,
// and single-line Background/AmbientLight directives.
package sceneio

import (
	"bufio"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"grinder/pkg/camera"
	"grinder/pkg/geometry"
	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/scene"
	"grinder/pkg/texture"
)

// Load reads and parses the scene file at path, resolving texture stem
// names against <parent-of-scene-dir>/Textures/<name>.ppm.
func Load(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: open %s: %w", path, err)
	}
	defer f.Close()

	texturesDir := filepath.Join(filepath.Dir(filepath.Dir(path)), "Textures")
	p := &parser{
		sc:          &scene.Scene{Ambient: gmath.Vector3{X: 0.2, Y: 0.2, Z: 0.2}, Background: gmath.Vector3{X: 0.8, Y: 0.9, Z: 1.0}},
		texturesDir: texturesDir,
		scanner:     bufio.NewScanner(f),
	}
	if err := p.run(); err != nil {
		return nil, fmt.Errorf("sceneio: %s: %w", path, err)
	}
	if !p.haveCamera {
		return nil, fmt.Errorf("sceneio: %s: no Camera block", path)
	}
	return p.sc, nil
}

type parser struct {
	sc          *scene.Scene
	texturesDir string
	scanner     *bufio.Scanner
	haveCamera  bool
}

func (p *parser) run() error {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		token := fields[0]

		switch token {
		case "Background":
			if v, ok := parseVec3(fields[1:]); ok {
				p.sc.Background = v
			}
			continue
		case "AmbientLight":
			if v, ok := parseVec3(fields[1:]); ok {
				p.sc.Ambient = v
			}
			continue
		}

		if len(fields) < 2 {
			fmt.Fprintf(os.Stderr, "sceneio: warning: missing name for token %q\n", token)
			p.skipToEnd()
			continue
		}
		name := fields[1]

		switch token {
		case "Camera":
			p.parseCamera(name)
		case "PointLight":
			p.parseLight(name)
		case "Sphere":
			p.parseSphere(name)
		case "Plane":
			p.parsePlane(name)
		case "Cube":
			p.parseCube(name)
		case "Scene":
			p.parseSceneBlock()
		default:
			fmt.Fprintf(os.Stderr, "sceneio: warning: unknown token %q\n", token)
			p.skipToEnd()
		}
	}
	return p.scanner.Err()
}

// block reads key/value lines until "end", calling set for each one.
func (p *parser) block(set func(key string, fields []string)) {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if line == "end" {
			return
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		set(fields[0], fields[1:])
	}
}

func (p *parser) skipToEnd() {
	p.block(func(string, []string) {})
}

// parseCamera discards the block's name: the format allows naming a camera
// but the scene model only ever has the one active camera, last one wins.
func (p *parser) parseCamera(string) {
	c := camera.Camera{
		Position:      gmath.Vector3{},
		Gaze:          gmath.Vector3{X: 0, Y: 0, Z: -1},
		FocalLength:   50,
		SensorWidth:   36,
		SensorHeight:  24,
		ResX:          800,
		ResY:          600,
		FocusDistance: 5000,
	}
	p.block(func(key string, f []string) {
		switch key {
		case "location":
			c.Position, _ = parseVec3(f)
		case "gaze":
			c.Gaze, _ = parseVec3(f)
		case "focal_length":
			c.FocalLength = parseFloatDefault(f, c.FocalLength)
		case "sensor_width":
			c.SensorWidth = parseFloatDefault(f, c.SensorWidth)
		case "sensor_height":
			c.SensorHeight = parseFloatDefault(f, c.SensorHeight)
		case "resolution":
			if len(f) >= 2 {
				if x, err := strconv.Atoi(f[0]); err == nil {
					c.ResX = x
				}
				if y, err := strconv.Atoi(f[1]); err == nil {
					c.ResY = y
				}
			}
		case "shutter_speed":
			c.ShutterSpeed = parseFloatDefault(f, c.ShutterSpeed)
		case "camera_velocity":
			c.Velocity, _ = parseVec3(f)
		case "aperture":
			c.Aperture = parseFloatDefault(f, c.Aperture)
		case "focus_distance":
			c.FocusDistance = parseFloatDefault(f, c.FocusDistance)
		}
	})

	// Lengths are specified in millimeters; the camera model works in meters.
	c.FocalLength /= 1000
	c.SensorWidth /= 1000
	c.SensorHeight /= 1000
	c.FocusDistance /= 1000

	p.sc.Camera = camera.New(c)
	p.haveCamera = true
}

func (p *parser) parseLight(name string) {
	l := scene.PointLight{Name: name, Intensity: 1.0}
	p.block(func(key string, f []string) {
		switch key {
		case "location":
			l.Position, _ = parseVec3(f)
		case "intensity":
			l.Intensity = parseFloatDefault(f, l.Intensity)
		case "radius":
			l.Radius = parseFloatDefault(f, l.Radius)
		}
	})
	l.Intensity /= 1000
	p.sc.Lights = append(p.sc.Lights, l)
}

type rawMaterial struct {
	m       material.Material
	albedo  gmath.Vector3
	texStem string
}

func newRawMaterial() rawMaterial {
	return rawMaterial{m: material.Default(), albedo: gmath.Vector3{X: 0.8, Y: 0.8, Z: 0.8}}
}

func (p *parser) applyMaterialKey(rm *rawMaterial, key string, f []string) bool {
	switch key {
	case "color":
		rm.albedo, _ = parseVec3(f)
	case "texture":
		if len(f) >= 1 {
			rm.texStem = f[0]
		}
	case "reflectivity":
		rm.m.Reflectivity = parseFloatDefault(f, rm.m.Reflectivity)
	case "refractivity":
		rm.m.Refractivity = parseFloatDefault(f, rm.m.Refractivity)
	case "ior":
		rm.m.IOR = parseFloatDefault(f, rm.m.IOR)
	case "shininess":
		rm.m.Shininess = parseFloatDefault(f, rm.m.Shininess)
	case "roughness":
		rm.m.Roughness = parseFloatDefault(f, rm.m.Roughness)
	default:
		return false
	}
	return true
}

func (p *parser) resolveTexture(stem string) *texture.Texture {
	if stem == "" {
		return nil
	}
	path := filepath.Join(p.texturesDir, stem+".ppm")
	tex, err := texture.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneio: warning: texture %q: %v (using flat albedo)\n", stem, err)
		return nil
	}
	return tex
}

func (p *parser) parseSphere(name string) {
	loc := gmath.Vector3{}
	radius := 1.0
	rm := newRawMaterial()

	p.block(func(key string, f []string) {
		if p.applyMaterialKey(&rm, key, f) {
			return
		}
		switch key {
		case "location":
			loc, _ = parseVec3(f)
		case "radius":
			radius = parseFloatDefault(f, radius)
		}
	})

	p.sc.Primitives = append(p.sc.Primitives, &geometry.Sphere{
		NameStr:  name,
		Center:   loc,
		Radius:   radius,
		Albedo:   rm.albedo,
		Material: rm.m,
		Texture:  p.resolveTexture(rm.texStem),
	})
}

func (p *parser) parsePlane(name string) {
	var corners [4]gmath.Vector3
	rm := newRawMaterial()

	p.block(func(key string, f []string) {
		if p.applyMaterialKey(&rm, key, f) {
			return
		}
		if strings.HasPrefix(key, "corner") {
			idxStr := strings.TrimPrefix(key, "corner")
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 1 || idx > 4 {
				return
			}
			corners[idx-1], _ = parseVec3(f)
		}
	})

	p.sc.Primitives = append(p.sc.Primitives, &geometry.Quad{
		NameStr:  name,
		Corners:  corners,
		Albedo:   rm.albedo,
		Material: rm.m,
		Texture:  p.resolveTexture(rm.texStem),
	})
}

func (p *parser) parseCube(name string) {
	translation := gmath.Vector3{}
	size := gmath.Vector3{X: 1, Y: 1, Z: 1}
	var rx, ry, rz float64
	rm := newRawMaterial()
	rm.albedo = gmath.Vector3{X: 0.7, Y: 0.7, Z: 0.9}

	p.block(func(key string, f []string) {
		if p.applyMaterialKey(&rm, key, f) {
			return
		}
		switch key {
		case "translation":
			translation, _ = parseVec3(f)
		case "rotation":
			if v, ok := parseVec3(f); ok {
				rx, ry, rz = v.X, v.Y, v.Z
			}
		case "scale":
			if len(f) >= 1 {
				s := parseFloatDefault(f, 1)
				size = gmath.Vector3{X: s, Y: s, Z: s}
			}
		case "size":
			size, _ = parseVec3(f)
		}
	})

	const deg2rad = gomath.Pi / 180
	rot := gmath.EulerZYX(rx*deg2rad, ry*deg2rad, rz*deg2rad)

	p.sc.Primitives = append(p.sc.Primitives, &geometry.Box{
		NameStr:  name,
		Center:   translation,
		Half:     size.Mul(0.5),
		Rotation: rot,
		Albedo:   rm.albedo,
		Material: rm.m,
		Texture:  p.resolveTexture(rm.texStem),
	})
}

func (p *parser) parseSceneBlock() {
	p.block(func(key string, f []string) {
		switch key {
		case "ambient":
			p.sc.Ambient, _ = parseVec3(f)
		case "background":
			p.sc.Background, _ = parseVec3(f)
		}
	})
}

func parseVec3(f []string) (gmath.Vector3, bool) {
	if len(f) < 3 {
		return gmath.Vector3{}, false
	}
	x, err1 := strconv.ParseFloat(f[0], 64)
	y, err2 := strconv.ParseFloat(f[1], 64)
	z, err3 := strconv.ParseFloat(f[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return gmath.Vector3{}, false
	}
	return gmath.Vector3{X: x, Y: y, Z: z}, true
}

func parseFloatDefault(f []string, def float64) float64 {
	if len(f) < 1 {
		return def
	}
	v, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return def
	}
	return v
}
