package directions

import (
	"net/url"
	"strings"
)

const mapsDirURL = "https://www.google.com/maps/dir/?"

// MapsLink builds a Google Maps deep link with saddr, daddr and an optional arrival,
// in that order.
func MapsLink(origin, destination, arrivalISO string) string {
	var b strings.Builder
	b.WriteString(mapsDirURL)
	b.WriteString("saddr=")
	b.WriteString(url.QueryEscape(origin))
	b.WriteString("&daddr=")
	b.WriteString(url.QueryEscape(destination))
	if arrivalISO != "" {
		b.WriteString("&arrival=")
		b.WriteString(url.QueryEscape(arrivalISO))
	}
	return b.String()
}
