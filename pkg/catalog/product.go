package catalog

import (
	"time"

	"github.com/Sternrassler/product-catalog/pkg/store"
)

// Source identifies where a product response was served from.
type Source string

const (
	// SourceCache marks a response served from the product cache.
	SourceCache Source = "cache"

	// SourceDatabase marks a response read from the product store.
	SourceDatabase Source = "database"
)

// TimeFormat is the layout used for created_at/updated_at in responses and cached entries.
const TimeFormat = time.RFC3339Nano

// Fields is the canonical field set of a product. It is exactly what gets
// cached at product:<id>.
type Fields struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    *string `json:"category"`
	CreatedAt   *string `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// Envelope is a product response annotated with its provenance and timing.
// Source and FetchTimeMS are unset for list results.
type Envelope struct {
	Fields
	Source      Source   `json:"source,omitempty"`
	FetchTimeMS *float64 `json:"fetch_time_ms,omitempty"`
}

// FieldsFromProduct converts a store row into the canonical field set.
func FieldsFromProduct(p store.Product) Fields {
	return Fields{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(TimeFormat)
	return &s
}

func newEnvelope(fields Fields, source Source, elapsed time.Duration) *Envelope {
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	return &Envelope{
		Fields:      fields,
		Source:      source,
		FetchTimeMS: &ms,
	}
}
