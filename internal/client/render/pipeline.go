// Package render implements the document viewing pipeline: authenticate,
// fetch raw bytes, decode them once, then rasterize pages on demand.
//
// The pipeline is a small state machine:
//
//	Idle -> Fetching -> Decoding -> Ready
//	                \         \
//	                 +-> Error <+
//
// Fetch and decode happen at most once per loaded document; page or zoom
// changes only re-enter the render step. A generation counter guards against
// stale results: when the source changes (or Close is called) mid-flight,
// the superseded operation discards its outcome instead of applying it.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/shelfhq/shelf/internal/common"
)

// State is the pipeline's lifecycle phase.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateDecoding State = "decoding"
	StateReady    State = "ready"
	StateError    State = "error"
)

// Fetcher retrieves the raw bytes of one stored document. The API client
// satisfies this.
type Fetcher interface {
	DownloadDocument(ctx context.Context, id int64) ([]byte, error)
}

// TokenSource reports the current bearer token. The session store satisfies
// this; the pipeline only reads it to refuse work while logged out.
type TokenSource interface {
	Token() string
}

// Pipeline drives one document from identifier to rasterized pages.
// It is safe for concurrent use; rasterization is serialized.
type Pipeline struct {
	fetcher Fetcher
	decoder Decoder
	tokens  TokenSource

	mu         sync.Mutex
	state      State
	errMsg     string
	gen        uint64
	doc        Document
	docID      int64
	totalPages int
}

// NewPipeline returns an idle pipeline.
func NewPipeline(fetcher Fetcher, decoder Decoder, tokens TokenSource) *Pipeline {
	return &Pipeline{fetcher: fetcher, decoder: decoder, tokens: tokens, state: StateIdle}
}

// State returns the current phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ErrMessage returns the message recorded when the pipeline entered Error.
func (p *Pipeline) ErrMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// TotalPages returns the decoded page count, or 0 before Ready.
func (p *Pipeline) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages
}

// Load fetches, validates and decodes the document with the given id,
// replacing whatever the pipeline held before. It returns the total page
// count on success. A Load superseded by a newer Load (or by Close) returns
// common.ErrSuperseded and leaves the newer operation's state untouched.
func (p *Pipeline) Load(ctx context.Context, id int64) (int, error) {
	gen := p.begin(id)

	if p.tokens.Token() == "" {
		p.fail(gen, "not authenticated")
		return 0, common.ErrNotAuthenticated
	}

	data, err := p.fetcher.DownloadDocument(ctx, id)
	if err != nil {
		p.fail(gen, fmt.Sprintf("fetch failed: %v", err))
		return 0, err
	}
	if err := ValidateSignature(data); err != nil {
		// A misconfigured proxy can return an HTML error page with a 200;
		// refuse to hand such a body to the decoder.
		p.fail(gen, err.Error())
		return 0, err
	}

	if !p.advance(gen, StateDecoding) {
		return 0, common.ErrSuperseded
	}

	doc, err := p.decoder.Decode(data)
	if err != nil {
		p.fail(gen, fmt.Sprintf("decode failed: %v", err))
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidPDF, err)
	}

	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		_ = doc.Close()
		return 0, common.ErrSuperseded
	}
	p.doc = doc
	p.totalPages = doc.PageCount()
	p.state = StateReady
	p.errMsg = ""
	total := p.totalPages
	p.mu.Unlock()

	return total, nil
}

// RenderPage rasterizes one page at the given scale. It requires Ready.
// An out-of-range page fails that single call with common.ErrPageOutOfRange
// without leaving Ready; the caller is expected to clamp before asking.
func (p *Pipeline) RenderPage(page int, scale float64) (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady || p.doc == nil {
		return nil, common.ErrNotReady
	}
	if page < 1 || page > p.totalPages {
		return nil, fmt.Errorf("%w: page %d of %d", common.ErrPageOutOfRange, page, p.totalPages)
	}

	img, err := p.doc.RenderPage(page, scale)
	if err != nil {
		// A single render failure does not poison the session.
		return nil, err
	}
	return img, nil
}

// Close releases the decoded handle and resets to Idle. Any in-flight Load
// observes the bumped generation and discards its result.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.releaseLocked()
	p.state = StateIdle
	p.errMsg = ""
}

// begin starts a new generation for the given source and moves to Fetching.
func (p *Pipeline) begin(id int64) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.releaseLocked()
	p.docID = id
	p.state = StateFetching
	p.errMsg = ""
	return p.gen
}

// advance moves to next if the generation still owns the pipeline.
func (p *Pipeline) advance(gen uint64, next State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return false
	}
	p.state = next
	return true
}

// fail records Error state unless the operation was superseded.
func (p *Pipeline) fail(gen uint64, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return
	}
	p.state = StateError
	p.errMsg = msg
}

func (p *Pipeline) releaseLocked() {
	if p.doc != nil {
		_ = p.doc.Close()
		p.doc = nil
	}
	p.totalPages = 0
}

// ValidateSignature rejects empty bodies and bodies that do not start with
// the PDF magic bytes.
func ValidateSignature(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty response body", common.ErrInvalidPDF)
	}
	if !bytes.HasPrefix(data, []byte(common.PDFMagic)) {
		return fmt.Errorf("%w: missing %q signature", common.ErrInvalidPDF, common.PDFMagic)
	}
	return nil
}
