package aggregate

import (
	"strings"
	"testing"

	"brasserie/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsFixture() []dataset.Review {
	return []dataset.Review{
		{ID: "R1", Rating: 5, Sentiment: "Positive", ServerMentioned: "Sarah", RelatedMenuItem: "Burger", Text: "Amazing burger, great service"},
		{ID: "R2", Rating: 4, Sentiment: "Positive", ServerMentioned: "Sarah", Text: "Lovely evening"},
		{ID: "R3", Rating: 2, Sentiment: "Negative", RelatedMenuItem: "Fries", Text: "Fries were cold"},
		{ID: "R4", Rating: 1, Sentiment: "Negative", ServerMentioned: "Mike", Text: "Waited forever"},
	}
}

func TestReviewsRatingHistogram(t *testing.T) {
	r := Reviews(reviewsFixture(), 5)

	assert.Equal(t, 4, r.TotalReviews)
	assert.Equal(t, 3.0, r.AvgRating)

	// All five buckets are present even when empty.
	require.Len(t, r.Ratings, 5)
	assert.Equal(t, RatingCount{Rating: 1, Count: 1, Percent: 25}, r.Ratings[0])
	assert.Equal(t, RatingCount{Rating: 3, Count: 0, Percent: 0}, r.Ratings[2])
	assert.Equal(t, RatingCount{Rating: 5, Count: 1, Percent: 25}, r.Ratings[4])
}

func TestReviewsSentimentSplit(t *testing.T) {
	r := Reviews(reviewsFixture(), 5)

	require.Len(t, r.Sentiments, 2)
	// Equal counts break ties by sentiment name.
	assert.Equal(t, SentimentCount{Sentiment: "Negative", Count: 2, Percent: 50}, r.Sentiments[0])
	assert.Equal(t, SentimentCount{Sentiment: "Positive", Count: 2, Percent: 50}, r.Sentiments[1])
}

func TestReviewsMentions(t *testing.T) {
	r := Reviews(reviewsFixture(), 5)

	require.Len(t, r.ServerMentions, 2)
	assert.Equal(t, MentionRating{Name: "Sarah", Mentions: 2, AvgRating: 4.5}, r.ServerMentions[0])
	assert.Equal(t, MentionRating{Name: "Mike", Mentions: 1, AvgRating: 1}, r.ServerMentions[1])

	require.Len(t, r.ItemMentions, 2)
	assert.Equal(t, MentionRating{Name: "Burger", Mentions: 1, AvgRating: 5}, r.ItemMentions[0])
	assert.Equal(t, MentionRating{Name: "Fries", Mentions: 1, AvgRating: 2}, r.ItemMentions[1])
}

func TestReviewsNegativeExcerpts(t *testing.T) {
	r := Reviews(reviewsFixture(), 5)

	// Excerpts keep input order, not ranking order.
	assert.Equal(t, []string{"Fries were cold", "Waited forever"}, r.NegativeExcerpts)
}

func TestReviewsExcerptTruncation(t *testing.T) {
	long := strings.Repeat("terrible ", 30)
	r := Reviews([]dataset.Review{
		{ID: "R1", Rating: 1, Sentiment: "Negative", Text: long},
	}, 5)

	require.Len(t, r.NegativeExcerpts, 1)
	assert.Len(t, []rune(r.NegativeExcerpts[0]), 100)
}
