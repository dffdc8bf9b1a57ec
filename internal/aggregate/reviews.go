package aggregate

import (
	"sort"

	"brasserie/internal/dataset"
)

// sentimentNegative marks reviews whose excerpts feed the improvement list.
const sentimentNegative = "Negative"

// excerptLength bounds negative-review excerpts.
const excerptLength = 100

// RatingCount is one bucket of the 1-5 rating histogram.
type RatingCount struct {
	Rating  int     `json:"rating"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SentimentCount counts reviews sharing one sentiment category.
type SentimentCount struct {
	Sentiment string  `json:"sentiment"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
}

// MentionRating averages the ratings of reviews mentioning one name.
type MentionRating struct {
	Name      string  `json:"name"`
	Mentions  int     `json:"mentions"`
	AvgRating float64 `json:"avg_rating"`
}

// ReviewSummary is the rollup of the reviews table.
type ReviewSummary struct {
	TotalReviews     int              `json:"total_reviews"`
	AvgRating        float64          `json:"avg_rating"`
	Ratings          []RatingCount    `json:"ratings"`
	Sentiments       []SentimentCount `json:"sentiments"`
	ServerMentions   []MentionRating  `json:"server_mentions"`
	ItemMentions     []MentionRating  `json:"item_mentions"`
	NegativeExcerpts []string         `json:"negative_excerpts,omitempty"`
}

// Reviews computes rating, sentiment and mention rollups from the reviews
// table. The rating histogram always carries all five buckets; excerpts of
// negative reviews keep their input order.
func Reviews(reviews []dataset.Review, topN int) ReviewSummary {
	r := ReviewSummary{TotalReviews: len(reviews)}

	ratingCounts := [5]int{}
	sentiments := make(map[string]int)
	servers := make(map[string]*MentionRating)
	items := make(map[string]*MentionRating)
	serverRatings := make(map[string]int)
	itemRatings := make(map[string]int)

	ratingSum := 0
	for _, rv := range reviews {
		ratingSum += rv.Rating
		ratingCounts[rv.Rating-1]++
		sentiments[rv.Sentiment]++

		if rv.ServerMentioned != "" {
			m := servers[rv.ServerMentioned]
			if m == nil {
				m = &MentionRating{Name: rv.ServerMentioned}
				servers[rv.ServerMentioned] = m
			}
			m.Mentions++
			serverRatings[rv.ServerMentioned] += rv.Rating
		}
		if rv.RelatedMenuItem != "" {
			m := items[rv.RelatedMenuItem]
			if m == nil {
				m = &MentionRating{Name: rv.RelatedMenuItem}
				items[rv.RelatedMenuItem] = m
			}
			m.Mentions++
			itemRatings[rv.RelatedMenuItem] += rv.Rating
		}

		if rv.Sentiment == sentimentNegative {
			r.NegativeExcerpts = append(r.NegativeExcerpts, excerpt(rv.Text))
		}
	}

	if r.TotalReviews > 0 {
		r.AvgRating = round1(float64(ratingSum) / float64(r.TotalReviews))
	}

	r.Ratings = make([]RatingCount, 5)
	for i, count := range ratingCounts {
		r.Ratings[i] = RatingCount{Rating: i + 1, Count: count, Percent: percent(count, r.TotalReviews)}
	}

	r.Sentiments = make([]SentimentCount, 0, len(sentiments))
	for sentiment, count := range sentiments {
		r.Sentiments = append(r.Sentiments, SentimentCount{
			Sentiment: sentiment,
			Count:     count,
			Percent:   percent(count, r.TotalReviews),
		})
	}
	sort.Slice(r.Sentiments, func(i, j int) bool {
		if r.Sentiments[i].Count != r.Sentiments[j].Count {
			return r.Sentiments[i].Count > r.Sentiments[j].Count
		}
		return r.Sentiments[i].Sentiment < r.Sentiments[j].Sentiment
	})

	r.ServerMentions = mentionRanking(servers, serverRatings, 0)
	r.ItemMentions = mentionRanking(items, itemRatings, topN)

	return r
}

func mentionRanking(mentions map[string]*MentionRating, ratingSums map[string]int, topN int) []MentionRating {
	ranking := make([]MentionRating, 0, len(mentions))
	for name, m := range mentions {
		m.AvgRating = round1(float64(ratingSums[name]) / float64(m.Mentions))
		ranking = append(ranking, *m)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Mentions != ranking[j].Mentions {
			return ranking[i].Mentions > ranking[j].Mentions
		}
		return ranking[i].Name < ranking[j].Name
	})
	if topN > 0 && len(ranking) > topN {
		ranking = ranking[:topN]
	}
	return ranking
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength])
}
