// Package profile classifies texture parameter bindings per game.
// Material dumps name their texture parameters differently from game to
// game: some follow engine-wide texture naming conventions, some use
// hand-written parameter tables, and the rest can be covered by a
// user-supplied Lua script.
package profile

import "github.com/uetools/propscan/entity"

// Profile decides which texture map slot a texture parameter binding
// feeds. Implementations must be safe for concurrent use; scan workers
// share one profile per source.
type Profile interface {
	Name() string

	// ClassifyTexture maps one binding, given the parameter name from
	// ParameterInfo and the referenced texture object path, to a texture
	// map kind. TextureMapUnknown with a nil error means the profile does
	// not recognize the binding; errors are reserved for broken
	// classification logic such as a failing script.
	ClassifyTexture(param, texture string) (entity.TextureMap, error)
}
