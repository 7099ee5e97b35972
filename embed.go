package innovayemprende

import "embed"

// StaticFS holds the stylesheet and the default course cover served under
// /static/.
//
//go:embed static
var StaticFS embed.FS
