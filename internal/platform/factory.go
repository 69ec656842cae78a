package platform

import (
	"fmt"
	"strings"

	"github.com/ignite/ad-launcher/internal/pkg/logger"
	"github.com/ignite/ad-launcher/internal/pkg/metrics"
	"github.com/ignite/ad-launcher/internal/platform/meta"
)

// Options selects and configures an adapter.
type Options struct {
	Platform string
	DryRun   bool

	// Real-adapter wiring; ignored for dry runs.
	Meta      meta.Config
	AccountID string
	PageID    string
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
}

// New returns the adapter for (platform, dryRun). Unknown platforms fail
// fast with ErrUnsupportedPlatform.
func New(opts Options) (Adapter, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Platform))

	switch name {
	case "meta", "facebook", "instagram":
	default:
		// Unknown platforms fail fast even for dry runs; a dry run against a
		// platform we cannot launch on would validate nothing.
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, opts.Platform)
	}

	if opts.DryRun {
		return NewDryRun(name), nil
	}

	client := meta.NewClient(opts.Meta, opts.Logger, opts.Metrics)
	return meta.NewAdapter(client, opts.AccountID, opts.PageID), nil
}
