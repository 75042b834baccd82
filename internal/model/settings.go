package model

import "time"

// Setting keys
const (
	SettingUnderConstruction = "under_construction_enabled"
)

// SiteStatus is the public view of the site-wide flags
type SiteStatus struct {
	UnderConstruction bool `json:"underConstruction"`
}

// SetSiteStatusRequest sets the under-construction flag.
// A pointer distinguishes a missing field from false.
type SetSiteStatusRequest struct {
	UnderConstruction *bool `json:"underConstruction"`
}

// HealthStatus is returned by the administrator health probe
type HealthStatus struct {
	Status            string    `json:"status"`
	Time              time.Time `json:"time"`
	Storage           string    `json:"storage"`
	SweeperRunning    bool      `json:"sweeperRunning"`
	StreamSubscribers int       `json:"streamSubscribers"`
}
