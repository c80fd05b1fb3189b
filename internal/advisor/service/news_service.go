package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"
)

// NewsService resolves the news for a symbol over a date range, serving each
// day from the local cache when possible and filling the gaps with a single
// remote query per call.
type NewsService interface {
	// GetCompanyNews returns the cached-plus-fetched articles for the last
	// `days` days in ascending date order, together with per-call statistics
	// on how the range was satisfied. "No articles" and "fetch failed" are
	// indistinguishable at this boundary: both yield an empty list.
	GetCompanyNews(ctx context.Context, companyName, symbol string, days int) ([]entity.Article, dto.NewsFetchStats)
}

type newsService struct {
	cfg     *config.Config
	log     *logger.Logger
	store   repository.NewsStoreRepository
	newsAPI repository.NewsAPIRepository

	now func() time.Time
}

// NewNewsService creates a new instance of newsService.
func NewNewsService(
	cfg *config.Config,
	log *logger.Logger,
	store repository.NewsStoreRepository,
	newsAPI repository.NewsAPIRepository,
) NewsService {
	return &newsService{
		cfg:     cfg,
		log:     log,
		store:   store,
		newsAPI: newsAPI,
		now:     time.Now,
	}
}

// noNewsMarkAfterDays is how far in the past an empty weekday must be before
// it is marked no_news. More recent empty days stay unmarked so they are
// re-checked on the next run.
const noNewsMarkAfterDays = 7

// MissingDates returns, ascending, every date in [start, end] whose cached
// state does not satisfy the refresh policy. A date is covered when its record
// has at least one article, is a weekend record, or carries no_news while
// refreshNoNews is off. refreshAll forces every date in range.
func MissingDates(records map[string]entity.DayRecord, start, end time.Time, refreshAll, refreshNoNews bool) []time.Time {
	var missing []time.Time
	for _, d := range utils.DatesInRange(start, end) {
		if refreshAll {
			missing = append(missing, d)
			continue
		}
		rec, ok := records[utils.FormatDate(d)]
		if !ok {
			missing = append(missing, d)
			continue
		}
		if len(rec.Articles) > 0 || rec.IsWeekend || (rec.NoNews && !refreshNoNews) {
			continue
		}
		missing = append(missing, d)
	}
	return missing
}

func (s *newsService) GetCompanyNews(ctx context.Context, companyName, symbol string, days int) ([]entity.Article, dto.NewsFetchStats) {
	articles, stats, err := s.fetch(ctx, companyName, symbol, days)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch company news",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		return []entity.Article{}, stats
	}
	return articles, stats
}

func (s *newsService) fetch(ctx context.Context, companyName, symbol string, days int) ([]entity.Article, dto.NewsFetchStats, error) {
	var stats dto.NewsFetchStats

	endDate := utils.DateOnly(s.now())
	startDate := endDate.AddDate(0, 0, -days)
	totalDays := days + 1

	records := s.store.Load(symbol)
	missing := MissingDates(records, startDate, endDate,
		s.cfg.NewsAPI.RefreshArticles, s.cfg.NewsAPI.RefreshNoNews)
	stats.DaysFromCache = totalDays - len(missing)

	s.log.InfoContext(ctx, "News cache inspected",
		logger.StringField("symbol", symbol),
		logger.StringField("company", companyName),
		logger.IntField("days_from_cache", stats.DaysFromCache),
		logger.IntField("days_missing", len(missing)))

	if len(missing) == 0 {
		return s.assemble(symbol, startDate, endDate), stats, nil
	}

	var weekendMissing, weekdayMissing []time.Time
	for _, d := range missing {
		if utils.IsWeekend(d) {
			weekendMissing = append(weekendMissing, d)
		} else {
			weekdayMissing = append(weekdayMissing, d)
		}
	}

	for _, d := range weekendMissing {
		date := utils.FormatDate(d)
		if err := s.store.Put(symbol, date, entity.NewWeekendRecord(date)); err != nil {
			return nil, stats, fmt.Errorf("failed to store weekend record for %s: %w", date, err)
		}
		stats.DaysWithNoNews++
	}

	if len(weekdayMissing) == 0 {
		return s.assemble(symbol, startDate, endDate), stats, nil
	}

	// The search API only accepts a contiguous range, so one query covers the
	// minimal interval spanning all missing weekdays, even if some dates
	// inside it were already cached.
	from := weekdayMissing[0]
	to := weekdayMissing[len(weekdayMissing)-1]

	remoteArticles, err := s.newsAPI.SearchArticles(ctx, s.buildQuery(symbol), from, to)
	if err != nil {
		return nil, stats, fmt.Errorf("news search failed: %w", err)
	}
	grouped := groupArticlesByDate(remoteArticles)

	for date, dayArticles := range grouped {
		if err := s.store.Put(symbol, date, entity.NewDayRecord(date, dayArticles)); err != nil {
			return nil, stats, fmt.Errorf("failed to store articles for %s: %w", date, err)
		}
	}

	noNewsCutoff := endDate.AddDate(0, 0, -noNewsMarkAfterDays)
	daysFromRemote := 0
	for _, d := range weekdayMissing {
		date := utils.FormatDate(d)
		if _, ok := grouped[date]; ok {
			daysFromRemote++
			continue
		}
		rec := entity.NewDayRecord(date, nil)
		if d.Before(noNewsCutoff) {
			rec.NoNews = true
		}
		if err := s.store.Put(symbol, date, rec); err != nil {
			return nil, stats, fmt.Errorf("failed to store empty record for %s: %w", date, err)
		}
	}
	stats.DaysFromRemote = daysFromRemote
	if emptyDays := len(weekdayMissing) - daysFromRemote; emptyDays > 0 {
		stats.DaysWithNoNews += emptyDays
	}

	s.log.InfoContext(ctx, "News gaps filled",
		logger.StringField("symbol", symbol),
		logger.IntField("days_from_remote", stats.DaysFromRemote),
		logger.IntField("days_with_no_news", stats.DaysWithNoNews))

	return s.assemble(symbol, startDate, endDate), stats, nil
}

// buildQuery builds the search text: the symbol without index markers,
// OR-ed with the configured suffix when one is set.
func (s *newsService) buildQuery(symbol string) string {
	query := strings.ReplaceAll(symbol, "^", "")
	if suffix := s.cfg.NewsAPI.QuerySuffix; suffix != "" {
		query += " OR " + suffix
	}
	return query
}

// groupArticlesByDate buckets remote articles by the date part of their
// publish timestamp. Articles with an unparseable timestamp are dropped.
func groupArticlesByDate(articles []dto.NewsAPIArticle) map[string][]entity.Article {
	grouped := make(map[string][]entity.Article)
	for _, a := range articles {
		if len(a.PublishedAt) < len(utils.DateLayout) {
			continue
		}
		date := a.PublishedAt[:len(utils.DateLayout)]
		if _, err := utils.ParseDate(date); err != nil {
			continue
		}
		grouped[date] = append(grouped[date], entity.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
	}
	return grouped
}

// assemble walks the range ascending and concatenates each weekday record's
// articles in stored order, truncated per day when a positive cap is set.
func (s *newsService) assemble(symbol string, startDate, endDate time.Time) []entity.Article {
	records := s.store.Load(symbol)
	maxPerDay := s.cfg.NewsAPI.MaxArticlesPerDay

	articles := []entity.Article{}
	for _, d := range utils.DatesInRange(startDate, endDate) {
		rec, ok := records[utils.FormatDate(d)]
		if !ok || rec.IsWeekend {
			continue
		}
		dayArticles := rec.Articles
		if maxPerDay > 0 && len(dayArticles) > maxPerDay {
			dayArticles = dayArticles[:maxPerDay]
		}
		articles = append(articles, dayArticles...)
	}
	return articles
}
