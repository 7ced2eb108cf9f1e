package synapse

// Mapper constants. These shape the visual identity of the scene and are
// deliberately not part of Config: every surface that lights up must
// agree on them, including the WGSL copies in backend/wgpu/shaders.
const (
	// activationStart is the scroll progress at which the input layer
	// begins to light up.
	activationStart = 0.05

	// activationRate converts scroll progress into activation intensity.
	activationRate = 2.5

	// activationLayerLag delays deeper layers: a node's layer progress
	// scales how much additional scroll it needs before activating.
	activationLayerLag = 0.6

	// focusStart and focusSpan define the final-beat ramp that
	// spotlights the output node.
	focusStart = 0.8
	focusSpan  = 0.2
)

// Activation maps scroll progress and a node's layer progress to the
// [0,1] intensity used for coloring. It models a wave of activity
// sweeping from the input layer to the output layer: later layers need
// more scroll to light up.
//
// Inputs outside [0,1] are clamped by construction; the result is always
// in [0,1].
func Activation(progress, layerProgress float32) float32 {
	return clamp01((progress-activationStart)*activationRate - layerProgress*activationLayerLag)
}

// Focus maps scroll progress to the [0,1] ramp active in the final 20%
// of scroll. It suppresses non-output visuals and highlights the output
// node for the conclusion beat.
func Focus(progress float32) float32 {
	return clamp01((progress - focusStart) / focusSpan)
}

// FadeRange is the opacity-window primitive behind every overlay
// section's fade-in/hold/fade-out visibility.
//
// It returns 0 outside [center-halfHold-fadeWidth, center+halfHold+fadeWidth],
// ramps linearly 0→1 across the leading fade band, holds 1 across
// [center-halfHold, center+halfHold], and ramps 1→0 across the trailing
// band. The function is continuous at every boundary. A zero fadeWidth
// degenerates to a hard-edged window.
func FadeRange(progress, center, halfHold, fadeWidth float32) float32 {
	d := progress - center
	if d < 0 {
		d = -d
	}
	if d <= halfHold {
		return 1
	}
	if fadeWidth <= 0 || d >= halfHold+fadeWidth {
		return 0
	}
	return 1 - (d-halfHold)/fadeWidth
}

// FadeWindow is one overlay section's visibility window.
type FadeWindow struct {
	Center    float32 `yaml:"center"`
	HalfHold  float32 `yaml:"halfHold"`
	FadeWidth float32 `yaml:"fadeWidth"`
}

// Opacity evaluates the window at the given scroll progress.
func (w FadeWindow) Opacity(progress float32) float32 {
	return FadeRange(progress, w.Center, w.HalfHold, w.FadeWidth)
}

// -------------------------------------------------------------------
// Heatmap
// -------------------------------------------------------------------

// RGBA represents a color with components in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Heatmap color stops. The ramp runs dark blue → blue → light blue →
// highlight as activation rises, with stop thresholds at 0.33 and 0.66.
// backend/wgpu/shaders implements the identical ramp; node and
// connection colors must never disagree.
var (
	heatmapStop0 = RGBA{R: 0.04, G: 0.07, B: 0.22, A: 1} // dark blue
	heatmapStop1 = RGBA{R: 0.10, G: 0.28, B: 0.85, A: 1} // blue
	heatmapStop2 = RGBA{R: 0.35, G: 0.65, B: 1.00, A: 1} // light blue
	heatmapStop3 = RGBA{R: 0.85, G: 0.95, B: 1.00, A: 1} // highlight
)

const (
	heatmapT1 = 0.33
	heatmapT2 = 0.66
)

// HeatmapColor maps an activation level to the display color.
// Activation outside [0,1] is clamped before mixing so the color
// fractions can never go NaN or overshoot the ramp.
func HeatmapColor(activation float32) RGBA {
	a := clamp01(activation)
	switch {
	case a < heatmapT1:
		return mixRGBA(heatmapStop0, heatmapStop1, a/heatmapT1)
	case a < heatmapT2:
		return mixRGBA(heatmapStop1, heatmapStop2, (a-heatmapT1)/(heatmapT2-heatmapT1))
	default:
		return mixRGBA(heatmapStop2, heatmapStop3, (a-heatmapT2)/(1-heatmapT2))
	}
}

// mixRGBA linearly interpolates between two colors.
func mixRGBA(c0, c1 RGBA, t float32) RGBA {
	return RGBA{
		R: c0.R + (c1.R-c0.R)*t,
		G: c0.G + (c1.G-c0.G)*t,
		B: c0.B + (c1.B-c0.B)*t,
		A: c0.A + (c1.A-c0.A)*t,
	}
}

// clamp01 clamps v to [0,1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
