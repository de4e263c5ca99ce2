// Package data holds files embedded into the binary.
package data

import _ "embed"

// Categories is the seed catalog of food categories, a JSON array of {id, name}.
//
//go:embed categories.json
var Categories []byte
