// cmd/assetpipe/session.go
package main

import (
	"context"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/creativeyann17/go-assetpipe/pkg/loader"
	"github.com/creativeyann17/go-assetpipe/pkg/session"
)

// barScale maps a [0,1] fraction onto bar units
const barScale = 1000

func openSession(verbose, quiet bool) (*session.Session, error) {
	cfg, err := session.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return session.New(cfg, session.WithLogger(session.NewLogger(verbose, quiet))), nil
}

func newFractionBar(p *mpb.Progress, name string) *mpb.Bar {
	return p.AddBar(barScale,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 10}),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
		),
	)
}

// trackFraction polls read into bar until ctx is done, then completes the bar
func trackFraction(ctx context.Context, bar *mpb.Bar, read func() float64) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			bar.SetCurrent(barScale)
			return
		case <-ticker.C:
			bar.SetCurrent(int64(read() * barScale))
		}
	}
}

func stateLabel(o loader.Observer) string {
	return o.State().String()
}
