package remote

const (
	OptimizeRelease = "release"
	OptimizeDebug   = "debug"
)

// ServerOptions is passed through to the service unchanged.
type ServerOptions struct {
	Optimize string `json:"x-optimize" yaml:"optimize"`
	Target   string `json:"x-target" yaml:"target"`
	NoCache  bool   `json:"x-no-cache,omitempty" yaml:"no_cache"`
}

// DefaultServerOptions returns a release build with the service's default
// target.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{Optimize: OptimizeRelease, Target: "C#"}
}
