package carousel

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
)

type pageScript struct {
	handle int
	src    string
}

// Page is a server-rendered Document. Scripts still attached when the
// page is written out are emitted as async script tags.
type Page struct {
	mu      sync.Mutex
	next    int
	scripts []pageScript
}

// NewPage creates an empty page document
func NewPage() *Page {
	return &Page{}
}

// AppendScript attaches src and returns an idempotent remover
func (p *Page) AppendScript(src string) func() {
	p.mu.Lock()
	p.next++
	handle := p.next
	p.scripts = append(p.scripts, pageScript{handle: handle, src: src})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, s := range p.scripts {
				if s.handle == handle {
					p.scripts = append(p.scripts[:i], p.scripts[i+1:]...)
					return
				}
			}
		})
	}
}

// Scripts returns the sources of attached scripts in attach order
func (p *Page) Scripts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	srcs := make([]string, 0, len(p.scripts))
	for _, s := range p.scripts {
		srcs = append(srcs, s.src)
	}
	return srcs
}

// ScriptTags renders the scripts attached at render time
func (p *Page) ScriptTags() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return scriptTags(p.Scripts()).Render(ctx, w)
	})
}
