// Command synapsedemo runs the scroll scene headlessly.
//
// It sweeps scroll progress from 0 to 1 across the requested number of
// frames against the in-memory backend and reports what the frame
// driver produced. Useful for eyeballing topology sizes and tuning a
// YAML config without a GPU.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/synapse"
	"github.com/gogpu/synapse/backend/headless"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file")
		frames     = flag.Int("frames", 600, "number of frames to simulate")
		duration   = flag.Float64("duration", 10.0, "simulated clock span in seconds")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	synapse.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg := synapse.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = synapse.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	backend := headless.New()
	scene, err := synapse.New(cfg, backend)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	topo := scene.Topology()
	log.Printf("topology: %d nodes, %d connections, %d segment vertices",
		len(topo.Nodes), len(topo.Connections), len(topo.SegmentPositions)/3)

	if *frames < 1 {
		*frames = 1
	}
	for f := 0; f < *frames; f++ {
		t := float32(f) / float32(*frames-1)
		if *frames == 1 {
			t = 0
		}
		scene.Tick(synapse.FrameContext{
			Progress: t,
			Time:     t * float32(*duration),
		})
	}

	pos, target := scene.Camera()
	scroll, _ := backend.Uniform(synapse.MaterialNodes, synapse.UniformScroll)
	focus, _ := backend.Uniform(synapse.MaterialNodes, synapse.UniformFocus)

	log.Printf("after %d frames: scroll=%.3f focus=%.3f", *frames, scroll, focus)
	log.Printf("camera: position=(%.2f, %.2f, %.2f) target=(%.2f, %.2f, %.2f)",
		pos.X, pos.Y, pos.Z, target.X, target.Y, target.Z)
	log.Printf("writes: %d uniforms, %d particle transforms, %d flushes",
		backend.UniformWrites(),
		backend.TransformWrites(synapse.GroupParticles),
		backend.Flushes())

	for i, o := range scene.SectionOpacities(1) {
		if o > 0 {
			log.Printf("section %d still visible at end of scroll (opacity %.2f)", i, o)
		}
	}
}
