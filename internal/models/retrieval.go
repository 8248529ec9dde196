// server/internal/models/retrieval.go
package models

import "time"

// WasteType là loại rác được mã hoá trong QR code.
type WasteType string

const (
	WasteOrganic    WasteType = "organic"
	WasteNonOrganic WasteType = "non-organic"
	WastePlastic    WasteType = "plastic"
)

// WasteTypes lists every recognized type, in the order the dashboard shows them.
var WasteTypes = []WasteType{WasteOrganic, WasteNonOrganic, WastePlastic}

// IsValid reports whether t is one of the recognized waste types.
func (t WasteType) IsValid() bool {
	switch t {
	case WasteOrganic, WasteNonOrganic, WastePlastic:
		return true
	}
	return false
}

// ParseWasteType is case sensitive, matching what the QR codes carry.
func ParseWasteType(s string) (WasteType, bool) {
	t := WasteType(s)
	return t, t.IsValid()
}

// RetrievalRecord là một lần thu gom rác tại một địa điểm.
// Created once, never updated.
type RetrievalRecord struct {
	ID        string    `json:"id"`
	WasteType WasteType `json:"type"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail,omitempty"`
}

// RetrievalView is the display projection of a RetrievalRecord served to the dashboard.
type RetrievalView struct {
	ID          string    `json:"id"`
	WasteType   WasteType `json:"type"`
	Location    string    `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	DisplayTime string    `json:"displayTime"`
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail,omitempty"`
	DisplayUser string    `json:"displayUser"`
}
