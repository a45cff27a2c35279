package engine

import (
	"context"

	"github.com/uetools/propscan/entity"
)

// AssetSource is an interface that defines the contract for dump providers.
type AssetSource interface {
	Name() string
	Provide(ctx context.Context, files chan<- entity.AssetFile) error
	ProfileName() string
}
