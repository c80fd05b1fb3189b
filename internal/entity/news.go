package entity

// Article is a single news article as persisted in the per-symbol cache.
// The URL is the dedup key; articles are immutable once stored.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// DayRecord is the cache entry for one calendar date of one symbol.
//
// A record is either a weekend record (IsWeekend set, no articles) or a
// weekday record that may additionally carry NoNews once the day was
// checked remotely and confirmed empty.
type DayRecord struct {
	Date          string    `json:"date"`
	Articles      []Article `json:"articles"`
	TotalArticles int       `json:"total_articles"`
	IsWeekend     bool      `json:"is_weekend,omitempty"`
	NoNews        bool      `json:"no_news,omitempty"`
}

// NewDayRecord builds a weekday record for the given date and articles.
func NewDayRecord(date string, articles []Article) DayRecord {
	if articles == nil {
		articles = []Article{}
	}
	return DayRecord{
		Date:          date,
		Articles:      articles,
		TotalArticles: len(articles),
	}
}

// NewWeekendRecord builds a record marking a date that is never queried
// remotely because it falls on Saturday or Sunday.
func NewWeekendRecord(date string) DayRecord {
	return DayRecord{
		Date:      date,
		Articles:  []Article{},
		IsWeekend: true,
	}
}
