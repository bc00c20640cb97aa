// Package carousel renders a profile's latest videos as a horizontally
// scrolling strip of embed placeholders. The placeholders are turned into
// players by TikTok's embed script, which the carousel attaches to its
// document for as long as the rendered list stays the same.
package carousel

import (
	"context"
	"slices"
	"sync"

	"tiktok-carousel/internal/core"
)

// Defaults mirror the feed endpoint's own defaults
const (
	DefaultAPIURL         = "/api/tiktoks"
	DefaultMaxVideos      = 5
	DefaultEmbedScriptURL = "https://www.tiktok.com/embed.js"
)

// State is the rendering state of a carousel
type State int

const (
	StateLoading State = iota
	StateEmpty
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Config configures a carousel
type Config struct {
	APIURL         string
	MaxVideos      int
	EmbedScriptURL string
	// Class is merged over the container's default Tailwind classes
	Class string
}

// DefaultConfig is the configuration of a carousel given no options
func DefaultConfig() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		MaxVideos:      DefaultMaxVideos,
		EmbedScriptURL: DefaultEmbedScriptURL,
	}
}

// withDefaults fills unset URLs. MaxVideos is taken as given, so zero asks for zero videos.
func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.EmbedScriptURL == "" {
		c.EmbedScriptURL = DefaultEmbedScriptURL
	}
	return c
}

// Video is one entry of the feed as the carousel sees it
type Video struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Source loads the video list behind a feed endpoint
type Source interface {
	Videos(ctx context.Context, apiURL string, count int) ([]Video, error)
}

// Document hosts the third-party embed script.
// AppendScript attaches one script element and returns the func that detaches it.
type Document interface {
	AppendScript(src string) (remove func())
}

// Carousel holds the view state of one mounted carousel
type Carousel struct {
	mu     sync.Mutex
	cfg    Config
	source Source
	doc    Document
	logger *core.Logger

	mounted bool
	state   State
	videos  []Video
	// seq identifies the latest load; results carrying an older value are dropped
	seq          uint64
	removeScript func()
}

// New creates an unmounted carousel in the loading state
func New(cfg Config, source Source, doc Document, logger *core.Logger) *Carousel {
	return &Carousel{
		cfg:    cfg.withDefaults(),
		source: source,
		doc:    doc,
		logger: logger,
		state:  StateLoading,
	}
}

// Mount activates the carousel and loads its videos
func (c *Carousel) Mount(ctx context.Context) {
	c.mu.Lock()
	c.mounted = true
	c.mu.Unlock()

	c.load(ctx)
}

// Configure changes the endpoint or video count. A change restarts loading.
func (c *Carousel) Configure(ctx context.Context, apiURL string, maxVideos int) {
	c.mu.Lock()
	next := Config{
		APIURL:         apiURL,
		MaxVideos:      maxVideos,
		EmbedScriptURL: c.cfg.EmbedScriptURL,
		Class:          c.cfg.Class,
	}.withDefaults()
	changed := next != c.cfg
	c.cfg = next
	mounted := c.mounted
	c.mu.Unlock()

	if changed && mounted {
		c.load(ctx)
	}
}

// Unmount deactivates the carousel, detaching its script and ignoring pending loads
func (c *Carousel) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mounted = false
	c.seq++
	c.releaseScript()
}

// State returns the current rendering state
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Videos returns a copy of the rendered list
func (c *Carousel) Videos() []Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.videos)
}

func (c *Carousel) load(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	cfg := c.cfg
	c.state = StateLoading
	c.mu.Unlock()

	videos, err := c.source.Videos(ctx, cfg.APIURL, cfg.MaxVideos)
	if err != nil {
		c.logger.WithContext(ctx).Error("Error fetching TikTok videos", "api_url", cfg.APIURL, "error", err)
		videos = nil
	}

	if !c.apply(seq, videos) {
		c.logger.WithContext(ctx).Debug("Discarded stale carousel load", "seq", seq)
	}
}

// apply installs the result of load seq, reporting false when it is stale
func (c *Carousel) apply(seq uint64, videos []Video) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || !c.mounted {
		return false
	}

	if len(videos) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StatePopulated
	}

	if !slices.Equal(c.videos, videos) {
		c.videos = videos
		c.releaseScript()
		if len(videos) > 0 {
			c.removeScript = c.doc.AppendScript(c.cfg.EmbedScriptURL)
		}
	}
	return true
}

// releaseScript detaches the current embed script. Callers hold c.mu.
func (c *Carousel) releaseScript() {
	if c.removeScript != nil {
		c.removeScript()
		c.removeScript = nil
	}
}
