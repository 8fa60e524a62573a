// Command voxelmesh builds the voxel scene described by a YAML config,
// meshes every chunk on a worker pool, and exports the result as glTF.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/jonny2027/voxelmesh/internal/config"
	"github.com/jonny2027/voxelmesh/internal/export"
	"github.com/jonny2027/voxelmesh/internal/logger"
	"github.com/jonny2027/voxelmesh/internal/meshing"
	"github.com/jonny2027/voxelmesh/internal/profiling"
	"github.com/jonny2027/voxelmesh/internal/voxel"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config; defaults are used when empty")
	outPath := flag.String("out", "", "output path override (.gltf or .glb)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	log := logger.Log

	pool, err := meshing.NewPool(cfg.Pool.Workers, cfg.Pool.QueueSize, cfg.Mesher.ChunkSize, log)
	if err != nil {
		log.Fatal("starting mesh pool", zap.Error(err))
	}
	closer.Bind(func() {
		pool.Shutdown()
		logger.Sync()
	})
	defer closer.Close()

	src := cfg.Scene.BuildScene()
	log.Info("scene built",
		zap.Int("solid_voxels", src.Count()),
		zap.Int32s("chunks", cfg.Scene.Chunks[:]))

	total := int(cfg.Scene.Chunks[0] * cfg.Scene.Chunks[1] * cfg.Scene.Chunks[2])
	results := make(chan meshing.Result, total)
	span := cfg.Mesher.ChunkSize * cfg.Mesher.Step
	for cz := int32(0); cz < cfg.Scene.Chunks[2]; cz++ {
		for cy := int32(0); cy < cfg.Scene.Chunks[1]; cy++ {
			for cx := int32(0); cx < cfg.Scene.Chunks[0]; cx++ {
				pool.SubmitWait(meshing.Job{
					Source: src,
					Opts: meshing.Options{
						Origin:    voxel.IntVec3{cx * span, cy * span, cz * span},
						Step:      cfg.Mesher.Step,
						LOD:       cfg.Mesher.LOD,
						Materials: cfg.Mesher.Materials,
						Collision: cfg.Mesher.Collision,
					},
					Result: results,
				})
			}
		}
	}

	chunks := make(map[string]export.Chunk, total)
	vertices, boxes, failed := 0, 0, 0
	for i := 0; i < total; i++ {
		res := <-results
		if res.Err != nil {
			failed++
			continue
		}
		o := res.Opts.Origin
		chunks[fmt.Sprintf("chunk_%d_%d_%d", o[0], o[1], o[2])] = export.Chunk{
			Mesh:        res.Mesh,
			Translation: mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])},
		}
		vertices += len(res.Mesh.Vertices)
		boxes += len(res.Mesh.CollisionBoxes)
	}
	if failed > 0 {
		log.Fatal("meshing failed", zap.Int("chunks", failed))
	}

	if err := export.Write(chunks, cfg.Output.Path); err != nil {
		log.Fatal("exporting mesh", zap.Error(err))
	}

	log.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.Int("vertices", vertices),
		zap.Int("collision_boxes", boxes),
		zap.String("phases", profiling.Report()))
}
