// pkg/loader/log.go
package loader

import (
	"log/slog"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/pkg/errors"
)

func logOutcome(log *slog.Logger, variant string, res *Result) {
	if res.Err != nil {
		log.Error("load failed",
			"loader", variant,
			"path", res.Path,
			"kind", assetpipe.KindOf(res.Err).String(),
			"cause", errors.Cause(res.Err),
		)
		return
	}
	log.Info("load succeeded",
		"loader", variant,
		"path", res.Path,
		"scene", res.Scene.Name,
		"clips", len(res.Clips),
		"materials", len(res.Materials),
		"textures", len(res.Textures),
	)
}
