package cache

// ResultKeyOpts are the options that affect a legalization result.
// Every field participates in the cache key: changing any of them must
// produce a different key.
type ResultKeyOpts struct {
	MaxPasses int  `json:"max_passes"`
	Trace     bool `json:"trace"`
}

// ArtifactKeyOpts are the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	ShowGrid bool    `json:"show_grid"`
	Arrows   bool    `json:"arrows"`
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// DesignKey keys a parsed design by the raw manifest hash.
	DesignKey(sourceHash string) string

	// ResultKey keys a legalization result by design hash and options.
	ResultKey(designHash string, opts ResultKeyOpts) string

	// ArtifactKey keys a rendered artifact by result hash and options.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DesignKey generates a key for design caching.
func (k *DefaultKeyer) DesignKey(sourceHash string) string {
	return hashKey("design", sourceHash)
}

// ResultKey generates a key for legalization result caching.
func (k *DefaultKeyer) ResultKey(designHash string, opts ResultKeyOpts) string {
	return hashKey("result", designHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
