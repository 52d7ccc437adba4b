// Package all registers every supported version source.
//
// Import it for side effects:
//
//	import _ "github.com/repin-dev/repin/all"
package all

import (
	_ "github.com/repin-dev/repin/internal/alpm"
	_ "github.com/repin-dev/repin/internal/rustup"
)
