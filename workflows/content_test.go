package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "January 2024", FormatMonth("2024-01"))
	assert.Equal(t, "December 2023", FormatMonth("2023-12"))
	assert.Equal(t, "garbage", FormatMonth("garbage"), "unparseable months pass through")
}

func TestBuildPost(t *testing.T) {
	post := BuildPost("2024-01", "cars")
	assert.Equal(t, "2024-01", post.Month)
	assert.Equal(t, "cars", post.DataType)
	assert.Equal(t, "Singapore Car Registrations for January 2024", post.Title)
	assert.Equal(t, "singapore-car-registrations-for-january-2024", post.Slug)
	assert.NotEmpty(t, post.Excerpt)

	coe := BuildPost("2024-02", "coe")
	assert.Equal(t, "COE Bidding Results for February 2024", coe.Title)
}

func TestBuildAnnouncement(t *testing.T) {
	post := BuildPost("2024-01", "cars")
	msg := BuildAnnouncement(post, "https://sgcarsight.com/")

	assert.Equal(t, post.Title+" is out now.", msg.Text)
	assert.Equal(t, "https://sgcarsight.com/blog/"+post.Slug, msg.Link, "trailing slash must not double up")
}
