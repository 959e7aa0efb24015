package service

import (
	"fmt"
	"time"

	authormodel "bookcatalog-core/internal/domains/author/model"
	bookmodel "bookcatalog-core/internal/domains/book/model"
)

// PublishPolicy caps how fast an author's catalog can grow.
type PublishPolicy struct {
	MaxPerYear     int
	CooldownDays   int
	MaxUnpublished int
}

// DefaultPublishPolicy returns the standard catalog pacing rules.
func DefaultPublishPolicy() PublishPolicy {
	return PublishPolicy{
		MaxPerYear:     2,
		CooldownDays:   180,
		MaxUnpublished: 5,
	}
}

// Check reports whether the author may publish a new book on the
// proposed date (nil means today). A "no" is an expected business
// outcome carried in the reason string, never an error.
//
// Checks run in order: active author, per-year cap, cooldown window,
// unpublished-pipeline cap. The first failing check wins.
func (p PublishPolicy) Check(author *authormodel.Author, existingBooks []*bookmodel.Book, proposedDate *time.Time) (bool, string) {
	if author == nil || !author.IsActive {
		return false, "author is not active"
	}

	target := time.Now().UTC()
	if proposedDate != nil {
		target = proposedDate.UTC()
	}

	publishedThisYear := 0
	for _, b := range existingBooks {
		if b == nil || b.PublicationDate == nil {
			continue
		}
		if b.PublicationDate.UTC().Year() == target.Year() {
			publishedThisYear++
		}
	}
	if publishedThisYear >= p.MaxPerYear {
		return false, fmt.Sprintf("already published %d books in %d", publishedThisYear, target.Year())
	}

	cooldown := time.Duration(p.CooldownDays) * 24 * time.Hour
	for _, b := range existingBooks {
		if b == nil || b.PublicationDate == nil {
			continue
		}
		since := target.Sub(b.PublicationDate.UTC())
		if since >= 0 && since < cooldown {
			remaining := int((cooldown - since + 24*time.Hour - 1) / (24 * time.Hour))
			return false, fmt.Sprintf("last book published too recently, wait %d more days", remaining)
		}
	}

	unpublished := 0
	for _, b := range existingBooks {
		if b != nil && b.PublicationDate == nil {
			unpublished++
		}
	}
	if unpublished >= p.MaxUnpublished {
		return false, fmt.Sprintf("too many unpublished books in the pipeline (%d)", unpublished)
	}

	return true, ""
}
