// Package share carries the resources installed with brb.
package share

import "embed"

// DefaultHeaderNames is the bundled alias table, relative to FS.
const DefaultHeaderNames = "brb_default_header_names.yml"

//go:embed brb_default_header_names.yml
var FS embed.FS
