package options

// Options collects the command-line flags shared across packages.
type Options struct {
	TexturePath    *string
	MeshPath       *string // empty means a procedural sphere
	VertexPath     *string
	FragmentPath   *string
	Width          *int
	Height         *int
	VSync          *bool
	SphereRadius   *float64
	SphereSegments *int

	// Recording
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}
