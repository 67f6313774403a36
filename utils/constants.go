package utils

import (
	"time"
)

// Token time constants
const (
	// TokenTTL is the time-to-live for bearer tokens (24 hours)
	TokenTTL = 24 * time.Hour
)

// Pagination constants
const (
	// DefaultPage is used when the page query parameter is missing
	DefaultPage = 1

	// DefaultURLPageSize is the default page size for URL listings
	DefaultURLPageSize = 10

	// DefaultAnalyticsPageSize is the default page size for analytics listings
	DefaultAnalyticsPageSize = 20

	// MaxPageSize caps any requested page size
	MaxPageSize = 100

	// RecentAnalyticsLimit is how many visits are embedded in a URL detail response
	RecentAnalyticsLimit = 10
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
