package synapse

import "testing"

func approx32(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestActivation(t *testing.T) {
	tests := []struct {
		name          string
		progress      float32
		layerProgress float32
		want          float32
	}{
		{"before start", 0, 0, 0},
		{"at start", 0.05, 0, 0},
		{"input layer partway", 0.25, 0, 0.5},
		{"input layer saturated", 0.5, 0, 1},
		{"deep layer lags", 0.25, 1, 0},
		{"deep layer saturated", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Activation(tt.progress, tt.layerProgress)
			if !approx32(got, tt.want, 1e-6) {
				t.Errorf("Activation(%v, %v) = %v, want %v", tt.progress, tt.layerProgress, got, tt.want)
			}
		})
	}
}

func TestActivation_DeeperLayersLater(t *testing.T) {
	// At any mid-scroll progress, activation never increases with depth.
	for p := float32(0.1); p < 1; p += 0.1 {
		prev := Activation(p, 0)
		for lp := float32(0.1); lp <= 1; lp += 0.1 {
			cur := Activation(p, lp)
			if cur > prev {
				t.Fatalf("activation rose with depth at progress %v: %v > %v", p, cur, prev)
			}
			prev = cur
		}
	}
}

func TestFocus(t *testing.T) {
	if got := Focus(0); got != 0 {
		t.Errorf("Focus(0) = %v, want 0", got)
	}
	if got := Focus(0.79); got != 0 {
		t.Errorf("Focus(0.79) = %v, want 0", got)
	}
	if got := Focus(0.9); !approx32(got, 0.5, 1e-6) {
		t.Errorf("Focus(0.9) = %v, want 0.5", got)
	}
	if got := Focus(1); !approx32(got, 1, 1e-6) {
		t.Errorf("Focus(1) = %v, want 1", got)
	}
	if got := Focus(1.5); got != 1 {
		t.Errorf("Focus(1.5) = %v, want 1 (clamped)", got)
	}
}

func TestFadeRange(t *testing.T) {
	const (
		center    = 0.5
		halfHold  = 0.1
		fadeWidth = 0.05
	)

	tests := []struct {
		name     string
		progress float32
		want     float32
	}{
		{"center", 0.5, 1},
		{"hold edge low", 0.4, 1},
		{"hold edge high", 0.6, 1},
		{"mid fade low", 0.375, 0.5},
		{"mid fade high", 0.625, 0.5},
		{"outside low", 0.3, 0},
		{"outside high", 0.7, 0},
		{"far outside", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FadeRange(tt.progress, center, halfHold, fadeWidth)
			if !approx32(got, tt.want, 1e-5) {
				t.Errorf("FadeRange(%v) = %v, want %v", tt.progress, got, tt.want)
			}
		})
	}
}

func TestFadeRange_Symmetric(t *testing.T) {
	for d := float32(0); d < 0.3; d += 0.01 {
		lo := FadeRange(0.5-d, 0.5, 0.1, 0.05)
		hi := FadeRange(0.5+d, 0.5, 0.1, 0.05)
		if !approx32(lo, hi, 1e-6) {
			t.Fatalf("asymmetric at offset %v: %v vs %v", d, lo, hi)
		}
	}
}

func TestFadeRange_ZeroFadeWidth(t *testing.T) {
	// Degenerates to a hard-edged window.
	if got := FadeRange(0.55, 0.5, 0.1, 0); got != 1 {
		t.Errorf("inside hold = %v, want 1", got)
	}
	if got := FadeRange(0.65, 0.5, 0.1, 0); got != 0 {
		t.Errorf("outside hold = %v, want 0", got)
	}
}

func TestFadeWindow_Opacity(t *testing.T) {
	w := FadeWindow{Center: 0.3, HalfHold: 0.05, FadeWidth: 0.1}
	if got := w.Opacity(0.3); got != 1 {
		t.Errorf("Opacity at center = %v, want 1", got)
	}
	if got := w.Opacity(0.9); got != 0 {
		t.Errorf("Opacity far away = %v, want 0", got)
	}
}

func TestHeatmapColor_Stops(t *testing.T) {
	if got := HeatmapColor(0); got != heatmapStop0 {
		t.Errorf("HeatmapColor(0) = %v, want %v", got, heatmapStop0)
	}
	if got := HeatmapColor(1); got != heatmapStop3 {
		t.Errorf("HeatmapColor(1) = %v, want %v", got, heatmapStop3)
	}

	// Clamped outside [0,1].
	if got := HeatmapColor(-3); got != heatmapStop0 {
		t.Errorf("HeatmapColor(-3) = %v, want %v", got, heatmapStop0)
	}
	if got := HeatmapColor(42); got != heatmapStop3 {
		t.Errorf("HeatmapColor(42) = %v, want %v", got, heatmapStop3)
	}
}

func TestHeatmapColor_MonotonicBrightness(t *testing.T) {
	// The ramp only ever brightens as activation rises.
	lum := func(c RGBA) float32 { return c.R + c.G + c.B }

	prev := lum(HeatmapColor(0))
	for i := 1; i <= 100; i++ {
		cur := lum(HeatmapColor(float32(i) / 100))
		if cur < prev-1e-5 {
			t.Fatalf("brightness dipped at activation %v", float32(i)/100)
		}
		prev = cur
	}
}

func TestHeatmapColor_InRange(t *testing.T) {
	for i := 0; i <= 100; i++ {
		c := HeatmapColor(float32(i) / 100)
		for _, v := range []float32{c.R, c.G, c.B, c.A} {
			if v < 0 || v > 1 {
				t.Fatalf("component out of range at activation %v: %v", float32(i)/100, c)
			}
		}
	}
}
