package app

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
	"github.com/jsamuelsen/quotevault/internal/render"
)

// TemplateInfo describes a share template for pickers.
type TemplateInfo struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// ShareService produces the shareable forms of a quote.
type ShareService struct {
	quotes   ports.QuoteRepository
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewShareService creates the service. It panics when a dependency is nil.
func NewShareService(quotes ports.QuoteRepository, renderer *render.Renderer, logger *slog.Logger) *ShareService {
	if quotes == nil || renderer == nil {
		panic("app: share service needs quotes and a renderer")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ShareService{
		quotes:   quotes,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "app.ShareService")),
	}
}

// Templates lists the available templates in picker order.
func (s *ShareService) Templates() []TemplateInfo {
	names := render.Names()
	out := make([]TemplateInfo, 0, len(names))

	for _, name := range names {
		style, err := render.Lookup(name)
		if err != nil {
			continue
		}

		out = append(out, TemplateInfo{Name: name, Background: style.Background, Text: style.Text.Color})
	}

	return out
}

// Text returns the plain-text form pasted into other apps.
func (s *ShareService) Text(ctx context.Context, quoteID string) (string, error) {
	q, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return "", err
	}

	return q.ShareText(), nil
}

// Image renders the quote with the named template as PNG bytes.
func (s *ShareService) Image(ctx context.Context, quoteID, template string) ([]byte, error) {
	if _, err := render.Lookup(template); err != nil {
		return nil, err
	}

	q, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderPNG(&buf, q, template); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).DebugContext(ctx, "share image rendered",
		slog.String("quote_id", quoteID),
		slog.String("template", template),
		slog.Int("bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}
