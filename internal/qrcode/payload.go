// server/internal/qrcode/payload.go
package qrcode

import (
	"strings"

	"waste-retrieval-api-server/internal/models"
)

// Delimiter separates the waste type from the location in a QR string.
const Delimiter = ":"

// Payload is the decoded content of a waste QR code.
type Payload struct {
	WasteType models.WasteType `json:"type"`
	Location  string           `json:"location"`
}

// Parse decodes "<wasteType>:<location>". The second return value is false
// when the string has no delimiter, either side is empty, or the type is
// not recognized. Whitespace is kept as is. Everything after the first
// delimiter belongs to the location, so "organic:dock:3" has location "dock:3".
func Parse(raw string) (Payload, bool) {
	typ, location, found := strings.Cut(raw, Delimiter)
	if !found || typ == "" || location == "" {
		return Payload{}, false
	}
	wasteType, ok := models.ParseWasteType(typ)
	if !ok {
		return Payload{}, false
	}
	return Payload{WasteType: wasteType, Location: location}, true
}

// Format is the inverse of Parse.
func Format(p Payload) string {
	return string(p.WasteType) + Delimiter + p.Location
}
