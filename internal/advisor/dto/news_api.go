package dto

// NewsAPIResponse is the response envelope of the news search endpoint.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
	Articles     []NewsAPIArticle `json:"articles"`
}

// NewsAPIArticle is a single article as returned by the news search endpoint.
type NewsAPIArticle struct {
	Source      NewsAPISource `json:"source"`
	Author      string        `json:"author"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	URLToImage  string        `json:"urlToImage"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

// NewsAPISource identifies the outlet an article came from.
type NewsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewsFetchStats reports, for one fetch call, how the requested range was
// satisfied. It is returned alongside the article list instead of being kept
// as shared mutable state.
type NewsFetchStats struct {
	DaysFromCache  int `json:"days_from_cache"`
	DaysFromRemote int `json:"days_from_remote"`
	DaysWithNoNews int `json:"days_with_no_news"`
}
