package model

// Reporting period labels. These appear verbatim in user-visible output
// (statement column headers and validation warnings), so they are part of
// the pipeline contract rather than presentation detail.
const (
	PeriodCY = "2025"
	PeriodPY = "2024"
)
