// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detok

import "strings"

// markerReplacer removes the tokenizer artifacts the pointer-generator model
// emits. Longer markers are listed first so the title and summary
// placeholders are removed whole.
var markerReplacer = strings.NewReplacer(
	"<s> summary </s>", "",
	"<s> title </s>", "",
	"<s>", "",
	"</s>", "",
	"<sec>", "\n",
	"<stop>", "",
	"<pad>", "",
)

// StripMarkers removes sentence, stop and padding markers from a model
// output line and turns section markers into newlines.
func StripMarkers(line string) string {
	return markerReplacer.Replace(line)
}
