package domain

import (
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
)

// Notice is a user-facing message about how results were produced.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OfflineNotice is shown when results come from the sample catalog.
var OfflineNotice = Notice{
	Title:       "Using offline data",
	Description: "API unavailable, showing sample results",
}

// Result is the outcome of one search.
type Result struct {
	Query    string                  `json:"query"`
	Products []productDomain.Product `json:"products"`
	// Fallback is set when the remote search failed and the sample catalog was used.
	Fallback bool    `json:"fallback"`
	Notice   *Notice `json:"notice,omitempty"`
}
