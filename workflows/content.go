// workflows/content.go
package workflows

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sgcarsight/backend/models"
	"github.com/sgcarsight/backend/social"
)

// FormatMonth renders a dataset month ("2024-01") as "January 2024". The raw
// value is returned unchanged when it does not parse, so a malformed month
// degrades to an ugly title rather than a failed workflow.
func FormatMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		log.Printf("WARN Workflow: could not parse month %q for display: %v\n", month, err)
		return month
	}
	return t.Format("January 2006")
}

func titleFor(dataType, month string) string {
	display := FormatMonth(month)
	switch dataType {
	case "cars":
		return fmt.Sprintf("Singapore Car Registrations for %s", display)
	case "coe":
		return fmt.Sprintf("COE Bidding Results for %s", display)
	case "deregistrations":
		return fmt.Sprintf("Vehicle Deregistrations for %s", display)
	default:
		return fmt.Sprintf("Singapore Vehicle Data for %s", display)
	}
}

// BuildPost assembles the blog post for one (month, dataType) pair.
func BuildPost(month, dataType string) models.Post {
	title := titleFor(dataType, month)
	return models.Post{
		Month:    month,
		DataType: dataType,
		Title:    title,
		Slug:     slugify(title),
		Excerpt:  fmt.Sprintf("Updated %s figures for %s are now available.", dataType, FormatMonth(month)),
	}
}

// BuildAnnouncement turns a post into the social message announcing it.
func BuildAnnouncement(post models.Post, siteURL string) social.Message {
	return social.Message{
		Text: post.Title + " is out now.",
		Link: strings.TrimSuffix(siteURL, "/") + "/blog/" + post.Slug,
	}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
