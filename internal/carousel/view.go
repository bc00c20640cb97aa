package carousel

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const (
	containerClass = "w-full max-w-3xl mx-auto p-4"

	loadingText = "Loading TikTok videos…"
	emptyText   = "No TikTok videos found."
)

// Component renders the carousel as it stands now
func (c *Carousel) Component() templ.Component {
	c.mu.Lock()
	state := c.state
	videos := append([]Video(nil), c.videos...)
	class := twmerge.Merge(containerClass, c.cfg.Class)
	c.mu.Unlock()

	switch state {
	case StatePopulated:
		return track(class, videos)
	case StateEmpty:
		return notice(state.String(), emptyText)
	default:
		return notice(state.String(), loadingText)
	}
}
