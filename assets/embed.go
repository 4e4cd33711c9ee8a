// Package assets embeds the sample crosswords shipped with the binary.
package assets

import (
	_ "embed"
)

//go:embed sample.yaml
var sample []byte

// SamplePuzzles returns the raw YAML of the bundled sample crosswords.
func SamplePuzzles() []byte {
	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}
