package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutEmailWidth is the minimum table width to show the email column.
	LayoutEmailWidth = 70

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// ActivityLineLimit is the number of log lines the activity view reads.
const ActivityLineLimit = 500

// DefaultUIInterval is how often the UI re-reads the cache.
const DefaultUIInterval = time.Second
