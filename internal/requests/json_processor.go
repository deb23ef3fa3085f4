package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/logging"
	"github.com/AkhmadOnline/transport-catalogue/internal/metrics"
	"github.com/AkhmadOnline/transport-catalogue/internal/router"
	"github.com/AkhmadOnline/transport-catalogue/internal/transit"
)

// Options tune the services built while processing a batch. The zero value
// is usable.
type Options struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	CacheSize int
	// Settings overrides the routing settings of the document when set.
	Settings *router.Settings
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// BuildService fills a catalogue from doc and builds the transport router.
func BuildService(doc *Document, opts Options) (*transit.Service, error) {
	logger := opts.logger().With(slog.String("component", "batch_loader"))
	start := time.Now()

	cat := catalogue.New()
	if err := FillCatalogue(cat, doc.BaseRequests); err != nil {
		return nil, fmt.Errorf("failed to load base requests: %w", err)
	}

	stats := cat.Stats()
	logging.LogOperation(logger, "catalogue_loaded",
		slog.Int("stops", stats.Stops),
		slog.Int("buses", stats.Buses),
		slog.Int("distances", stats.Distances),
		slog.Duration("duration", time.Since(start)))

	return NewService(cat, doc.Settings(), opts)
}

// NewService builds the transport router over a loaded catalogue. The
// settings of opts, when set, replace settings.
func NewService(cat *catalogue.Catalogue, settings router.Settings, opts Options) (*transit.Service, error) {
	if opts.Settings != nil {
		settings = *opts.Settings
	}

	tr, err := router.New(cat, settings,
		router.WithCache(opts.CacheSize),
		router.WithLogger(opts.logger()))
	if err != nil {
		return nil, err
	}

	return transit.NewService(cat, tr, opts.Metrics, opts.logger()), nil
}

// ProcessJSON reads a JSON document from in, answers its stat requests and
// writes the JSON array of responses to out.
func ProcessJSON(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	doc, err := DecodeDocument(in)
	if err != nil {
		return err
	}

	service, err := BuildService(doc, opts)
	if err != nil {
		return err
	}

	responses, err := Answer(ctx, service, doc.StatRequests)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(responses); err != nil {
		return fmt.Errorf("failed to write responses: %w", err)
	}
	return nil
}
