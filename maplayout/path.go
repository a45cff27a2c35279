package maplayout

import (
	"path"
	"strings"
)

// SplitObjectPath drops the object-name suffix FModel appends after a
// period, turning /Game/Env/SM_Rock.2 into /Game/Env/SM_Rock. Only the
// final path segment is cut, so dots in directory segments survive;
// paths without a suffix pass through unchanged.
func SplitObjectPath(objectPath string) string {
	dir, base := path.Split(objectPath)
	name, _, _ := strings.Cut(base, ".")
	return dir + name
}

// AssetPath converts an FModel object path into the relative .uasset
// path of the exported package, without a leading separator.
func AssetPath(objectPath string) string {
	p := path.Clean(SplitObjectPath(objectPath) + ".uasset")
	return strings.TrimPrefix(p, "/")
}
