package ingest

// Result holds the outcome of an import operation.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SessionsImported int `json:"sessions_imported"`
	SessionsSkipped  int `json:"sessions_skipped"`
	SessionsRejected int `json:"sessions_rejected"`

	SetGroupsImported int `json:"set_groups_imported"`
	SetsImported      int `json:"sets_imported"`

	Rejected []string `json:"rejected,omitempty"`

	Message string `json:"message,omitempty"`
}
