package source

import (
	"context"

	"github.com/uetools/propscan/entity"
)

// AssetSource feeds property dumps into the engine. Provide blocks
// until the source is exhausted or ctx is cancelled; watching sources
// never exhaust on their own.
type AssetSource interface {
	Name() string

	// ProfileName names the game profile that classifies texture
	// bindings in dumps served by this source.
	ProfileName() string

	Provide(ctx context.Context, files chan<- entity.AssetFile) error
}
