package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Article is a raw article as collected from a source.
type Article struct {
	ID          string
	URL         string
	Title       string
	Content     string
	CollectedAt time.Time
}

// NormalizedDoc pairs a document id with its bag-of-words normalized text.
type NormalizedDoc struct {
	ID         string
	Normalized string
}

// ArticleID derives the stable document id from the source-native
// identifier (typically the article URL).
func ArticleID(nativeID string) string {
	sum := md5.Sum([]byte(nativeID))
	return hex.EncodeToString(sum[:])
}

// InsertArticle appends a raw article to a source's content table. Articles
// whose id already exists are skipped; the boolean reports whether the row
// was inserted.
func (s *Store) InsertArticle(ctx context.Context, source string, article Article) (bool, error) {
	if article.ID == "" {
		article.ID = ArticleID(article.URL)
	}
	collected := article.CollectedAt
	if collected.IsZero() {
		collected = time.Now().UTC()
	}
	inserted, err := s.AppendNewRows(ctx, contentTable(source),
		[]string{"id", "url", "title", "content", "collected_at"},
		[][]any{{article.ID, article.URL, article.Title, article.Content, collected.Format(time.RFC3339Nano)}},
		"id",
	)
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	return inserted > 0, nil
}

// ArticlesPendingNormalization returns raw articles that have no normalized
// counterpart yet, ordered by id for deterministic batches.
func (s *Store) ArticlesPendingNormalization(ctx context.Context, source string) ([]Article, error) {
	query := fmt.Sprintf(
		`SELECT id, url, title, content, collected_at FROM %s
         WHERE id NOT IN (SELECT id FROM %s)
         ORDER BY id`,
		contentTable(source), normalizedTable(source),
	)
	rows, err := s.queryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pending normalization: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var (
			article      Article
			collectedRaw string
		)
		if err := rows.Scan(&article.ID, &article.URL, &article.Title, &article.Content, &collectedRaw); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if collected, err := time.Parse(time.RFC3339Nano, collectedRaw); err == nil {
			article.CollectedAt = collected
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// AppendNormalized persists normalized text for documents not yet present,
// returning the number of rows inserted.
func (s *Store) AppendNormalized(ctx context.Context, source string, docs []NormalizedDoc) (int64, error) {
	rows := make([][]any, len(docs))
	for i, doc := range docs {
		rows[i] = []any{doc.ID, doc.Normalized}
	}
	return s.AppendNewRows(ctx, normalizedTable(source), []string{"id", "normalized"}, rows, "id")
}

// NormalizedAll returns every normalized document for a source, ordered by id.
func (s *Store) NormalizedAll(ctx context.Context, source string) ([]NormalizedDoc, error) {
	query := fmt.Sprintf(`SELECT id, normalized FROM %s ORDER BY id`, normalizedTable(source))
	return s.scanNormalized(ctx, query)
}

// NormalizedPendingEncoding returns normalized documents that have no
// persisted feature vector yet, ordered by id.
func (s *Store) NormalizedPendingEncoding(ctx context.Context, source string) ([]NormalizedDoc, error) {
	query := fmt.Sprintf(
		`SELECT id, normalized FROM %s
         WHERE id NOT IN (SELECT document_id FROM feature_vectors)
         ORDER BY id`,
		normalizedTable(source),
	)
	return s.scanNormalized(ctx, query)
}

func (s *Store) scanNormalized(ctx context.Context, query string, args ...any) ([]NormalizedDoc, error) {
	rows, err := s.queryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query normalized docs: %w", err)
	}
	defer rows.Close()

	var docs []NormalizedDoc
	for rows.Next() {
		var doc NormalizedDoc
		if err := rows.Scan(&doc.ID, &doc.Normalized); err != nil {
			return nil, fmt.Errorf("scan normalized doc: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SourceCounts reports raw and normalized row counts for a source.
func (s *Store) SourceCounts(ctx context.Context, source string) (raw int, normalized int, err error) {
	row := s.queryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(1) FROM %s`, contentTable(source)))
	if err = row.Scan(&raw); err != nil {
		return 0, 0, fmt.Errorf("count raw articles: %w", err)
	}
	row = s.queryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(1) FROM %s`, normalizedTable(source)))
	if err = row.Scan(&normalized); err != nil {
		return 0, 0, fmt.Errorf("count normalized articles: %w", err)
	}
	return raw, normalized, nil
}
