// Package config handles CLI configuration loading and the YAML scene
// description the mesher demo builds its voxel world from.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jonny2027/voxelmesh/internal/voxel"
)

// Config holds all settings of a meshing run.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Mesher  MesherConfig  `yaml:"mesher"`
	Pool    PoolConfig    `yaml:"pool"`
	Scene   SceneConfig   `yaml:"scene"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MesherConfig holds per-job mesher options.
type MesherConfig struct {
	ChunkSize int32 `yaml:"chunk_size"`
	Step      int32 `yaml:"step"`
	LOD       int32 `yaml:"lod"`
	Materials bool  `yaml:"materials"`
	Collision bool  `yaml:"collision"`
}

// PoolConfig holds worker pool sizing.
type PoolConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// SceneConfig describes the voxel world to build: a grid of chunks and the
// solids filled into it.
type SceneConfig struct {
	Chunks  [3]int32      `yaml:"chunks"`
	Boxes   []BoxShape    `yaml:"boxes"`
	Spheres []SphereShape `yaml:"spheres"`
}

// BoxShape is a filled half-open box.
type BoxShape struct {
	Min   voxel.IntVec3 `yaml:"min"`
	Max   voxel.IntVec3 `yaml:"max"`
	Color HexColor      `yaml:"color"`
}

// SphereShape is a filled sphere.
type SphereShape struct {
	Center voxel.IntVec3 `yaml:"center"`
	Radius int32         `yaml:"radius"`
	Color  HexColor      `yaml:"color"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// HexColor is an RGB color parsed from "#rrggbb" notation.
type HexColor voxel.Color

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return errors.Errorf("config: invalid color %q, want #rrggbb", s)
	}
	*c = HexColor{R: r, G: g, B: b, A: 0xff}
	return nil
}

// Material returns the color as a packed voxel material.
func (c HexColor) Material() voxel.Material {
	return voxel.MaterialFromColor(voxel.Color(c))
}

// Default returns a Config with sensible default values: one 32-voxel chunk
// with a floor slab and a sphere resting on it.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Mesher: MesherConfig{
			ChunkSize: 32,
			Step:      1,
			Materials: true,
			Collision: true,
		},
		Pool: PoolConfig{Workers: 4, QueueSize: 64},
		Scene: SceneConfig{
			Chunks: [3]int32{1, 1, 1},
			Boxes: []BoxShape{{
				Min:   voxel.IntVec3{0, 0, 0},
				Max:   voxel.IntVec3{32, 6, 32},
				Color: HexColor{R: 0x44, G: 0xaa, B: 0x33, A: 0xff},
			}},
			Spheres: []SphereShape{{
				Center: voxel.IntVec3{16, 14, 16},
				Radius: 8,
				Color:  HexColor{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
			}},
		},
		Output: OutputConfig{Path: "mesh.gltf"},
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// BuildScene fills a fresh voxel store from the scene description.
func (s SceneConfig) BuildScene() *voxel.MapSource {
	src := voxel.NewMapSource()
	for _, b := range s.Boxes {
		src.FillBox(voxel.Box{Min: b.Min, Max: b.Max}, b.Color.Material())
	}
	for _, sp := range s.Spheres {
		src.FillSphere(sp.Center, sp.Radius, sp.Color.Material())
	}
	return src
}
