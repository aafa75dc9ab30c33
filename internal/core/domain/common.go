package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// AccessInfo records where a request came from: the client IP, its user agent and when.
type AccessInfo struct {
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	At        time.Time `json:"at"`
}

// String renders the access as a single "ip agent" line.
func (a AccessInfo) String() string {
	if a.UserAgent == "" {
		return a.IP
	}
	return a.IP + " " + a.UserAgent
}
