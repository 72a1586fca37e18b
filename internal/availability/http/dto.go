package http

type AvailabilityRequest struct {
	Date        string   `json:"date"`
	DurationMin int      `json:"durationMin"`
	AddonIDs    []string `json:"addonIds"`
}
