// Package chatops defines the narrow surface a chat bot frontend
// would drive this renderer through. It is deliberately not wired to
// any particular chat platform, but the interface and its defaults
// (0.5 overlay opacity, a 2000-character reply budget) are preserved
// so a future chat integration has a faithful contract to implement
// against.
package chatops

import (
	"context"
	"image"
	"strings"
)

// DefaultOpacity is the overlay opacity a chat surface uses, distinct
// from the CLI's 0.7 default.
const DefaultOpacity = 0.5

// maxReplyLength is the host platform's message length limit that
// reply descriptions are formatted against.
const maxReplyLength = 2000

// Renderer is the operation a chat command needs: render a composite
// image for a place name at a given opacity.
type Renderer interface {
	RenderPlace(ctx context.Context, place string, opacity float64) (image.Image, error)
}

// FormatDescription truncates a reply to fit the host platform's
// message length limit, appending "\netc." rather than silently
// chopping mid-sentence.
func FormatDescription(s string) string {
	if len(s) <= maxReplyLength {
		return s
	}
	const suffix = "\netc."
	cut := maxReplyLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(s[:cut], " \n") + suffix
}
