// Package catalog embeds the static game and achievement definitions shipped with the
// service.
package catalog

import _ "embed"

//go:embed games.yaml
var Games []byte

//go:embed achievements.yaml
var Achievements []byte
