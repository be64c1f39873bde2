package model

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
}

// ImportSummary reports the outcome of a bulk CSV import run.
type ImportSummary struct {
	FilesProcessed int             `json:"filesProcessed"`
	RowsImported   int             `json:"rowsImported"`
	RowsSkipped    int             `json:"rowsSkipped"`
	Warnings       []ImportWarning `json:"warnings,omitempty"`
}

// ImportWarning records a skipped row or file during import.
// Line is zero for file-level warnings.
type ImportWarning struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// RefreshResult reports the outcome of a provider price refresh for one security.
type RefreshResult struct {
	SecurityID string `json:"securityId"`
	Symbol     string `json:"symbol"`
	NewPrices  int    `json:"newPrices"`
	Error      string `json:"error,omitempty"`
}
