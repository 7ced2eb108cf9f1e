package synapse

// Node is one unit in the layered network. Nodes are immutable after
// generation and referenced by index everywhere else.
type Node struct {
	// Layer is the ordinal layer index, 0 = input layer.
	Layer int

	// Index is the node's position within its layer.
	Index int

	// Position is the node's fixed location in scene units.
	Position Vec3

	// LayerProgress is Layer normalized to [0,1] across the network:
	// 0 at the input layer, 1 at the output layer. All per-node shading
	// derives from it.
	LayerProgress float32
}

// Connection links a node to a node in the next layer. The curve is a
// single quadratic Bezier: Start and End are node positions, Control is
// offset from the straight-line midpoint to give the organic bowed look.
type Connection struct {
	// From and To index into Topology.Nodes.
	From, To int

	Start, Control, End Vec3

	// Rand is a per-connection random scalar handed to the shader for
	// variation. Replicated onto every tessellated vertex.
	Rand float32
}

// Eval returns the point on the connection curve at parameter t in [0,1].
func (c Connection) Eval(t float32) Vec3 {
	return quadBez(c.Start, c.Control, c.End, t)
}

// Topology is the generated network: logical node and connection
// records plus the flat vertex attribute arrays the connection renderer
// consumes. Generation is pure; the same Config always produces a
// bit-identical Topology.
type Topology struct {
	Nodes       []Node
	Connections []Connection

	// SegmentPositions holds 2 vertices per tessellated sub-segment,
	// 3 floats per vertex, start/end pairs in draw order. Sub-segments
	// are straight lines approximating each connection's curve.
	SegmentPositions []float32

	// SegmentProgress holds one interpolated layer-progress value per
	// vertex, matching SegmentPositions pairwise.
	SegmentProgress []float32

	// SegmentRand holds the owning connection's Rand per vertex.
	// Attributes are flat, not shared: line-list primitives cannot
	// share vertices between sub-segments.
	SegmentRand []float32
}

// Generate builds the network topology for the given configuration.
// It is total over valid configs and has no failure modes; callers are
// expected to have run cfg.Validate.
func Generate(cfg *Config) *Topology {
	topo := &Topology{}

	layers := cfg.Layers
	xCenter := float32(len(layers)-1) / 2

	// Nodes: X centered on the layer sequence, Y centered within the
	// layer, Z a small deterministic jitter.
	layerStart := make([]int, len(layers))
	for l, count := range layers {
		layerStart[l] = len(topo.Nodes)
		yCenter := float32(count-1) / 2
		for i := 0; i < count; i++ {
			jitter := (Sample(nodeSeed(l, i)) - 0.5) * cfg.DepthJitter
			topo.Nodes = append(topo.Nodes, Node{
				Layer: l,
				Index: i,
				Position: V3(
					(float32(l)-xCenter)*cfg.LayerSpacing,
					(float32(i)-yCenter)*cfg.NodeSpacing,
					jitter,
				),
				LayerProgress: float32(l) / float32(len(layers)-1),
			})
		}
	}

	// Connections: probabilistic inclusion per adjacent node pair, then
	// one control point offset from the midpoint, then tessellation.
	for l := 0; l < len(layers)-1; l++ {
		for i := 0; i < layers[l]; i++ {
			for j := 0; j < layers[l+1]; j++ {
				seed := connSeed(l, i, j)
				if Sample(seed) <= cfg.InclusionThreshold {
					continue
				}

				from := layerStart[l] + i
				to := layerStart[l+1] + j
				start := topo.Nodes[from].Position
				end := topo.Nodes[to].Position

				mid := start.Midpoint(end)
				control := mid.Add(V3(
					0,
					(Sample(seed+1)-0.5)*2*cfg.CurveLift,
					(Sample(seed+2)-0.5)*2*cfg.CurveDepth,
				))

				conn := Connection{
					From:    from,
					To:      to,
					Start:   start,
					Control: control,
					End:     end,
					Rand:    Sample(seed + 3),
				}
				topo.Connections = append(topo.Connections, conn)
				topo.tessellate(conn, cfg.CurveSegments)
			}
		}
	}

	return topo
}

// tessellate appends the connection's sub-segment vertices and flat
// attributes to the topology's arrays.
func (t *Topology) tessellate(c Connection, segments int) {
	fromLP := t.Nodes[c.From].LayerProgress
	toLP := t.Nodes[c.To].LayerProgress

	for s := 0; s < segments; s++ {
		t0 := float32(s) / float32(segments)
		t1 := float32(s+1) / float32(segments)

		for _, tc := range [2]float32{t0, t1} {
			p := c.Eval(tc)
			t.SegmentPositions = append(t.SegmentPositions, p.X, p.Y, p.Z)
			t.SegmentProgress = append(t.SegmentProgress, fromLP+(toLP-fromLP)*tc)
			t.SegmentRand = append(t.SegmentRand, c.Rand)
		}
	}
}

// OutputNode returns the index of the network's output node: the first
// node of the last layer. The production configuration has exactly one.
func (t *Topology) OutputNode() int {
	if len(t.Nodes) == 0 {
		return -1
	}
	last := t.Nodes[len(t.Nodes)-1].Layer
	for i := len(t.Nodes) - 1; i >= 0; i-- {
		if t.Nodes[i].Layer != last {
			return i + 1
		}
	}
	return 0
}
