package providers

import (
	"context"

	"weatherreport.app/models"
	"weatherreport.app/providers/cache"
)

// GeocodingProvider resolves a free-text place name to a location
type GeocodingProvider interface {
	Resolve(ctx context.Context, name string) (*models.Location, error)
}

// ForecastProvider retrieves the raw weather bundle for a location. A nil
// subsection in the returned payload means that fetch failed; callers treat
// it as absent data, not an error.
type ForecastProvider interface {
	FetchForecast(ctx context.Context, location models.Location) (*models.RawWeatherPayload, error)
}

// Attachment is a binary file carried by an email
type Attachment struct {
	Filename string
	Content  []byte
}

// EmailMessage is a fully assembled outbound email
type EmailMessage struct {
	To         string
	Subject    string
	TextBody   string
	HTMLBody   string
	Attachment *Attachment
}

// EmailProvider defines the interface for email transport
type EmailProvider interface {
	SendEmail(msg EmailMessage) error
}

// GenericCache is an alias to avoid circular imports
type GenericCache = cache.GenericCache
