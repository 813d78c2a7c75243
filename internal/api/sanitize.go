package api

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var xssPolicy = bluemonday.UGCPolicy()

// sanitize strips unsafe markup from user text and unescapes what is left.
func sanitize(val string) string {
	return html.UnescapeString(xssPolicy.Sanitize(val))
}
