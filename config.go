package synapse

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("synapse: invalid config")

	// ErrBadKeyframes is returned when the camera keyframe list is malformed.
	ErrBadKeyframes = errors.New("synapse: camera keyframes must start at 0, end at 1, and strictly increase")
)

// Config holds every tunable of the scene. All values are art-directed
// defaults rather than functional requirements; see DefaultConfig.
//
// A Config is read-only once passed to New. The YAML tags allow the full
// configuration to be authored externally via LoadConfig.
type Config struct {
	// Layers is the node count per layer, input to output.
	Layers []int `yaml:"layers" validate:"required,min=2,dive,gte=1"`

	// LayerSpacing is the X distance between adjacent layers.
	LayerSpacing float32 `yaml:"layerSpacing" validate:"gt=0"`

	// NodeSpacing is the Y distance between adjacent nodes in a layer.
	NodeSpacing float32 `yaml:"nodeSpacing" validate:"gt=0"`

	// DepthJitter is the maximum Z offset applied to a node position.
	DepthJitter float32 `yaml:"depthJitter" validate:"gte=0"`

	// InclusionThreshold sparsifies connections: a node pair connects
	// only when its sample exceeds this value. 0 connects everything.
	InclusionThreshold float32 `yaml:"inclusionThreshold" validate:"gte=0,lte=1"`

	// CurveLift and CurveDepth bound the Y and Z offsets of a
	// connection's Bezier control point from the segment midpoint.
	CurveLift  float32 `yaml:"curveLift" validate:"gte=0"`
	CurveDepth float32 `yaml:"curveDepth" validate:"gte=0"`

	// CurveSegments is the number of straight sub-segments each
	// connection curve is tessellated into.
	CurveSegments int `yaml:"curveSegments" validate:"gte=1"`

	// ParticleCount is the number of traveling particles.
	ParticleCount int `yaml:"particleCount" validate:"gte=0"`

	// AmbientCount is the number of static decorative dust points.
	AmbientCount int `yaml:"ambientCount" validate:"gte=0"`

	// AmbientBounds is the half-extent of the dust bounding volume.
	AmbientBounds Vec3 `yaml:"ambientBounds"`

	// ParticleScrollThreshold hides traveling particles until scroll
	// progress passes it, so the idle scene starts out quiet.
	ParticleScrollThreshold float32 `yaml:"particleScrollThreshold" validate:"gte=0,lte=1"`

	// CameraSmoothing is the per-frame exponential smoothing factor
	// applied to the camera pose. 1 snaps instantly, small values glide.
	CameraSmoothing float32 `yaml:"cameraSmoothing" validate:"gt=0,lte=1"`

	// Keyframes is the authored camera path. Must start at T=0, end at
	// T=1, with strictly increasing T.
	Keyframes Path `yaml:"keyframes" validate:"required,min=2"`

	// FadeWindows are the overlay sections' visibility windows,
	// evaluated by SectionOpacities.
	FadeWindows []FadeWindow `yaml:"fadeWindows"`
}

// DefaultConfig returns the configuration of the production scene.
func DefaultConfig() Config {
	return Config{
		Layers:                  []int{6, 10, 14, 10, 8, 4, 1},
		LayerSpacing:            4.5,
		NodeSpacing:             1.2,
		DepthJitter:             0.8,
		InclusionThreshold:      0.55,
		CurveLift:               0.9,
		CurveDepth:              1.0,
		CurveSegments:           3,
		ParticleCount:           60,
		AmbientCount:            300,
		AmbientBounds:           V3(22, 12, 10),
		ParticleScrollThreshold: 0.05,
		CameraSmoothing:         0.03,
		Keyframes: Path{
			{T: 0.00, Position: V3(0, 0, 26), Target: V3(0, 0, 0)},
			{T: 0.18, Position: V3(-10, 3, 18), Target: V3(-6, 0, 0)},
			{T: 0.38, Position: V3(-2, -4, 14), Target: V3(0, 0, 0)},
			{T: 0.58, Position: V3(6, 5, 15), Target: V3(4, 0, 0)},
			{T: 0.80, Position: V3(10, 0, 10), Target: V3(12, 0, 0)},
			{T: 1.00, Position: V3(13.5, 0, 6), Target: V3(13.5, 0, 0)},
		},
		FadeWindows: []FadeWindow{
			{Center: 0.08, HalfHold: 0.05, FadeWidth: 0.04},
			{Center: 0.28, HalfHold: 0.06, FadeWidth: 0.05},
			{Center: 0.48, HalfHold: 0.06, FadeWidth: 0.05},
			{Center: 0.68, HalfHold: 0.06, FadeWidth: 0.05},
			{Center: 0.92, HalfHold: 0.08, FadeWidth: 0.05},
		},
	}
}

// validate is shared; struct validation is cheap enough to run per New.
var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration. It combines struct-tag validation
// with the keyframe ordering rules tags cannot express.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	kf := c.Keyframes
	if kf[0].T != 0 || kf[len(kf)-1].T != 1 {
		return ErrBadKeyframes
	}
	for i := 1; i < len(kf); i++ {
		if kf[i].T <= kf[i-1].T {
			return ErrBadKeyframes
		}
	}

	for i, fw := range c.FadeWindows {
		if fw.HalfHold < 0 || fw.FadeWidth < 0 {
			return fmt.Errorf("%w: fade window %d has negative extent", ErrInvalidConfig, i)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file and validates it.
// Fields absent from the file keep their DefaultConfig values, so a file
// only needs to name the tunables it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("synapse: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("synapse: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
