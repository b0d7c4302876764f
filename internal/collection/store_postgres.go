// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/database/schema"
	"github.com/taibuivan/drecktrack/internal/platform/dberr"
	"github.com/taibuivan/drecktrack/pkg/slice"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
//
// All kinds share the collection.item table. Children (external ids, seasons,
// episodes, episode progress) are written and deleted explicitly, child first,
// inside the same transaction as their parent.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed collection store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Table aliases used by every statement: u = user item, i = item.
var (
	entrySelect = fmt.Sprintf("SELECT %s, %s FROM %s u JOIN %s i ON i.%s = u.%s",
		strings.Join(prefixed("u", schema.CollectionUserItem.Columns()), ", "),
		strings.Join(prefixed("i", schema.CollectionItem.Columns()), ", "),
		schema.CollectionUserItem.Table, schema.CollectionItem.Table,
		schema.CollectionItem.ID, schema.CollectionUserItem.ItemID,
	)

	entryCount = fmt.Sprintf("SELECT COUNT(*) FROM %s u JOIN %s i ON i.%s = u.%s",
		schema.CollectionUserItem.Table, schema.CollectionItem.Table,
		schema.CollectionItem.ID, schema.CollectionUserItem.ItemID,
	)

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// # Reads

// Count returns how many entries of userID match filter.
func (repository *PostgresRepository) Count(context context.Context, userID string, filter Filter) (int, error) {
	where, args := whereClause(userID, filter)

	var total int
	if err := repository.pool.QueryRow(context, entryCount+where, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Collection", "count_entries")
	}
	return total, nil
}

/*
List returns one slice of userID's entries matching filter.

Description: The ordering's SQL expression drives ORDER BY with the entry id as
a stable tiebreaker. External ids and episode progress for the page are
fetched with two follow-up queries keyed by ANY($1) to avoid N+1 lookups.
*/
func (repository *PostgresRepository) List(context context.Context, userID string, filter Filter, ordering Ordering, direction Direction, limit, offset int) ([]*Entry, error) {
	where, args := whereClause(userID, filter)

	sortDirection := "ASC"
	if direction == Descending {
		sortDirection = "DESC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY %s %s, u.%s ASC LIMIT $%d OFFSET $%d",
		entrySelect, where, ordering.Expr, sortDirection, schema.CollectionUserItem.ID, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Collection", "list_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Collection", "scan_entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Collection", "list_entries")
	}
	rows.Close()

	if err := repository.attachRelations(context, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Find returns userID's entry for itemID.
func (repository *PostgresRepository) Find(context context.Context, userID, itemID string) (*Entry, error) {
	query := fmt.Sprintf("%s WHERE u.%s = $1 AND u.%s = $2 ORDER BY u.%s ASC LIMIT 1",
		entrySelect, schema.CollectionUserItem.UserID, schema.CollectionUserItem.ItemID, schema.CollectionUserItem.DateAdded)

	entry, err := scanEntry(repository.pool.QueryRow(context, query, userID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, dberr.Wrap(err, "Collection entry", "find_entry")
	}

	if err := repository.attachRelations(context, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

// LoadSeasons attaches seasons and episodes to every Show among items.
func (repository *PostgresRepository) LoadSeasons(context context.Context, items ...*collectible.Item) error {
	shows := make(map[string]*collectible.Show)
	for _, item := range items {
		if show, ok := item.Show(); ok {
			shows[item.ID] = show
		}
	}
	if len(shows) == 0 {
		return nil
	}

	showIDs := make([]string, 0, len(shows))
	for id := range shows {
		showIDs = append(showIDs, id)
	}

	season := schema.CollectionSeason
	episode := schema.CollectionEpisode

	// ── 1. Seasons ────────────────────────────────────────────────────────
	seasonQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1::text[]::uuid[]) ORDER BY %s NULLS FIRST, %s",
		strings.Join(season.Columns(), ", "), season.Table, season.ShowID, season.SeasonNumber, season.ID)

	rows, err := repository.pool.Query(context, seasonQuery, showIDs)
	if err != nil {
		return dberr.Wrap(err, "Season", "list_seasons")
	}

	seasonsByShow := make(map[string][]collectible.Season)
	for rows.Next() {
		var s collectible.Season
		if err := rows.Scan(&s.ID, &s.ShowID, &s.Name, &s.ExternalID, &s.SeasonNumber, &s.ReleaseDate, &s.Description); err != nil {
			rows.Close()
			return dberr.Wrap(err, "Season", "scan_season")
		}
		seasonsByShow[s.ShowID] = append(seasonsByShow[s.ShowID], s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "Season", "list_seasons")
	}

	// ── 2. Episodes ───────────────────────────────────────────────────────
	episodeQuery := fmt.Sprintf(`SELECT %s FROM %s e JOIN %s s ON e.%s = s.%s
		WHERE s.%s = ANY($1::text[]::uuid[]) ORDER BY e.%s NULLS FIRST, e.%s`,
		strings.Join(prefixed("e", episode.Columns()), ", "), episode.Table, season.Table, episode.SeasonID, season.ID,
		season.ShowID, episode.EpisodeNumber, episode.ID)

	rows, err = repository.pool.Query(context, episodeQuery, showIDs)
	if err != nil {
		return dberr.Wrap(err, "Episode", "list_episodes")
	}
	defer rows.Close()

	episodesBySeason := make(map[string][]collectible.Episode)
	for rows.Next() {
		var e collectible.Episode
		if err := rows.Scan(&e.ID, &e.SeasonID, &e.Name, &e.ExternalID, &e.Watched, &e.EpisodeNumber, &e.Duration, &e.ReleaseDate, &e.Description); err != nil {
			return dberr.Wrap(err, "Episode", "scan_episode")
		}
		episodesBySeason[e.SeasonID] = append(episodesBySeason[e.SeasonID], e)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "Episode", "list_episodes")
	}

	// ── 3. Assembly ───────────────────────────────────────────────────────
	for showID, show := range shows {
		seasons := seasonsByShow[showID]
		for i := range seasons {
			seasons[i].Episodes = episodesBySeason[seasons[i].ID]
		}
		if seasons == nil {
			seasons = []collectible.Season{}
		}
		show.Seasons = seasons
	}

	return nil
}

// ItemIDs reports which of itemIDs already have an entry for userID.
func (repository *PostgresRepository) ItemIDs(context context.Context, userID string, itemIDs []string) (map[string]bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2::text[]::uuid[])",
		schema.CollectionUserItem.ItemID, schema.CollectionUserItem.Table,
		schema.CollectionUserItem.UserID, schema.CollectionUserItem.ItemID)

	return repository.stringSet(context, query, "list_item_ids", userID, itemIDs)
}

// ExternalIdentifiers reports which of identifiers belong to an item in userID's collection.
func (repository *PostgresRepository) ExternalIdentifiers(context context.Context, userID string, identifiers []string) (map[string]bool, error) {
	externalID := schema.CollectionExternalID
	query := fmt.Sprintf(`SELECT DISTINCT x.%s FROM %s x JOIN %s u ON u.%s = x.%s
		WHERE u.%s = $1 AND x.%s = ANY($2::text[])`,
		externalID.Identifier, externalID.Table, schema.CollectionUserItem.Table,
		schema.CollectionUserItem.ItemID, externalID.ItemID,
		schema.CollectionUserItem.UserID, externalID.Identifier)

	return repository.stringSet(context, query, "list_external_ids", userID, identifiers)
}

// # Writes

// Create persists new entries together with their items in one transaction.
func (repository *PostgresRepository) Create(context context.Context, entries ...*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	item := schema.CollectionItem
	userItem := schema.CollectionUserItem

	insertItem := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		item.Table, strings.Join(item.Columns(), ", "), placeholders(1, len(item.Columns())))
	insertEntry := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		userItem.Table, strings.Join(userItem.Columns(), ", "), placeholders(1, len(userItem.Columns())))

	for _, entry := range entries {
		if _, err := transaction.Exec(context, insertItem, itemValues(entry.Item)...); err != nil {
			return dberr.Wrap(err, "Collection item", "create_item")
		}
		if _, err := transaction.Exec(context, insertEntry, entryValues(entry)...); err != nil {
			return dberr.Wrap(err, "Collection entry", "create_entry")
		}
		if err := writeChildren(context, transaction, entry); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit entries: %w", err)
	}
	return nil
}

/*
Update overwrites entries and their items in one transaction.

Description: Scalar columns are updated in place; children (external ids,
seasons, episodes, episode progress) are replaced wholesale. Show items must
therefore carry their full season list.
*/
func (repository *PostgresRepository) Update(context context.Context, entries ...*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	item := schema.CollectionItem
	userItem := schema.CollectionUserItem

	// Column 0 is the primary key in both tables and becomes the WHERE argument.
	updateItem := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		item.Table, assignments(item.Columns()[1:], 2), item.ID)
	updateEntry := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		userItem.Table, assignments(userItem.Columns()[1:], 2), userItem.ID)

	for _, entry := range entries {
		if _, err := transaction.Exec(context, updateItem, itemValues(entry.Item)...); err != nil {
			return fmt.Errorf("postgres: failed to update item: %w", err)
		}
		if _, err := transaction.Exec(context, updateEntry, entryValues(entry)...); err != nil {
			return fmt.Errorf("postgres: failed to update entry: %w", err)
		}
		if err := deleteProgress(context, transaction, []string{entry.ID}); err != nil {
			return err
		}
		if err := deleteItemChildren(context, transaction, entry.ItemID); err != nil {
			return err
		}
		if err := writeChildren(context, transaction, entry); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit entries: %w", err)
	}
	return nil
}

/*
Delete removes userID's entry for itemID and the item it owns.

Description: Rows are deleted explicitly in dependency order: episode
progress, the entry, external ids, episodes, seasons and finally the item.
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, itemID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	userItem := schema.CollectionUserItem
	lookup := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		userItem.ID, userItem.Table, userItem.UserID, userItem.ItemID)

	rows, err := transaction.Query(context, lookup, userID, itemID)
	if err != nil {
		return fmt.Errorf("postgres: failed to find entry: %w", err)
	}
	entryIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("postgres: failed to scan entry ids: %w", err)
	}
	if len(entryIDs) == 0 {
		return ErrEntryNotFound
	}

	if err := deleteProgress(context, transaction, entryIDs); err != nil {
		return err
	}

	deleteEntry := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1::text[]::uuid[])", userItem.Table, userItem.ID)
	if _, err := transaction.Exec(context, deleteEntry, entryIDs); err != nil {
		return fmt.Errorf("postgres: failed to delete entry: %w", err)
	}

	if err := deleteItemChildren(context, transaction, itemID); err != nil {
		return err
	}

	deleteItem := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CollectionItem.Table, schema.CollectionItem.ID)
	if _, err := transaction.Exec(context, deleteItem, itemID); err != nil {
		return fmt.Errorf("postgres: failed to delete item: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete: %w", err)
	}
	return nil
}

// # Children

// writeChildren queues every child row of entry into one batch.
func writeChildren(context context.Context, transaction pgx.Tx, entry *Entry) error {
	batch := &pgx.Batch{}

	externalID := schema.CollectionExternalID
	insertExternalID := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3)",
		externalID.Table, strings.Join(externalID.Columns(), ", "))
	for _, id := range entry.Item.ExternalIDs {
		batch.Queue(insertExternalID, entry.Item.ID, id.Source, id.Identifier)
	}

	if show, ok := entry.Item.Show(); ok {
		season := schema.CollectionSeason
		episode := schema.CollectionEpisode
		insertSeason := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			season.Table, strings.Join(season.Columns(), ", "), placeholders(1, len(season.Columns())))
		insertEpisode := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			episode.Table, strings.Join(episode.Columns(), ", "), placeholders(1, len(episode.Columns())))

		for _, s := range show.Seasons {
			batch.Queue(insertSeason, s.ID, s.ShowID, s.Name, s.ExternalID, s.SeasonNumber, s.ReleaseDate, s.Description)
			for _, e := range s.Episodes {
				batch.Queue(insertEpisode, e.ID, e.SeasonID, e.Name, e.ExternalID, e.Watched, e.EpisodeNumber, e.Duration, e.ReleaseDate, e.Description)
			}
		}
	}

	progress := schema.CollectionEpisodeProgress
	insertProgress := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		progress.Table, strings.Join(progress.Columns(), ", "), placeholders(1, len(progress.Columns())))
	for _, p := range entry.EpisodeProgress {
		batch.Queue(insertProgress, p.ID, entry.ID, p.SeasonNumber, p.EpisodeNumber, p.Watched, p.WatchedOn)
	}

	if batch.Len() == 0 {
		return nil
	}
	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "Collection item", "write_item_children")
	}
	return nil
}

// deleteProgress removes the episode progress rows of entryIDs.
func deleteProgress(context context.Context, transaction pgx.Tx, entryIDs []string) error {
	progress := schema.CollectionEpisodeProgress
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1::text[]::uuid[])", progress.Table, progress.UserItemID)

	if _, err := transaction.Exec(context, query, entryIDs); err != nil {
		return fmt.Errorf("postgres: failed to delete episode progress: %w", err)
	}
	return nil
}

// deleteItemChildren removes the external ids, episodes and seasons of itemID.
func deleteItemChildren(context context.Context, transaction pgx.Tx, itemID string) error {
	externalID := schema.CollectionExternalID
	season := schema.CollectionSeason
	episode := schema.CollectionEpisode

	statements := []struct {
		action string
		query  string
	}{
		{"external ids", fmt.Sprintf("DELETE FROM %s WHERE %s = $1", externalID.Table, externalID.ItemID)},
		{"episodes", fmt.Sprintf("DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)",
			episode.Table, episode.SeasonID, season.ID, season.Table, season.ShowID)},
		{"seasons", fmt.Sprintf("DELETE FROM %s WHERE %s = $1", season.Table, season.ShowID)},
	}
	for _, statement := range statements {
		if _, err := transaction.Exec(context, statement.query, itemID); err != nil {
			return fmt.Errorf("postgres: failed to delete %s: %w", statement.action, err)
		}
	}
	return nil
}

// attachRelations loads external ids and episode progress for entries.
func (repository *PostgresRepository) attachRelations(context context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	byItem := make(map[string]*Entry, len(entries))
	byEntry := make(map[string]*Entry, len(entries))
	for _, entry := range entries {
		byItem[entry.ItemID] = entry
		byEntry[entry.ID] = entry
	}

	externalID := schema.CollectionExternalID
	externalQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1::text[]::uuid[]) ORDER BY %s, %s",
		strings.Join(externalID.Columns(), ", "), externalID.Table, externalID.ItemID, externalID.Source, externalID.Identifier)

	itemIDs := slice.Map(entries, func(entry *Entry) string { return entry.ItemID })
	rows, err := repository.pool.Query(context, externalQuery, itemIDs)
	if err != nil {
		return dberr.Wrap(err, "External id", "list_external_ids")
	}
	for rows.Next() {
		var id collectible.ExternalID
		if err := rows.Scan(&id.CollectibleItemID, &id.Source, &id.Identifier); err != nil {
			rows.Close()
			return dberr.Wrap(err, "External id", "scan_external_id")
		}
		if entry, ok := byItem[id.CollectibleItemID]; ok {
			entry.Item.ExternalIDs = append(entry.Item.ExternalIDs, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "External id", "list_external_ids")
	}

	progress := schema.CollectionEpisodeProgress
	progressQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1::text[]::uuid[]) ORDER BY %s, %s",
		strings.Join(progress.Columns(), ", "), progress.Table, progress.UserItemID, progress.SeasonNumber, progress.EpisodeNumber)

	entryIDs := slice.Map(entries, func(entry *Entry) string { return entry.ID })
	rows, err = repository.pool.Query(context, progressQuery, entryIDs)
	if err != nil {
		return dberr.Wrap(err, "Episode progress", "list_episode_progress")
	}
	defer rows.Close()

	for rows.Next() {
		var p EpisodeProgress
		var entryID string
		if err := rows.Scan(&p.ID, &entryID, &p.SeasonNumber, &p.EpisodeNumber, &p.Watched, &p.WatchedOn); err != nil {
			return dberr.Wrap(err, "Episode progress", "scan_episode_progress")
		}
		if entry, ok := byEntry[entryID]; ok {
			entry.EpisodeProgress = append(entry.EpisodeProgress, p)
		}
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "Episode progress", "list_episode_progress")
	}
	return nil
}

// # Row Mapping

// scanEntry reads one row produced by entrySelect.
func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		entry       Entry
		status      string
		itemType    string
		core        collectible.Item
		authors     []string
		publisher   string
		pageCount   *int
		currentPage *int
		bookFormat  *string
		duration    *float64
		platform    string
		timePlayed  float64
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.ItemID, &status, &entry.UserRating, &entry.Notes,
		&entry.DateAdded, &entry.DateStarted, &entry.DateCompleted, &entry.UpdatedAt,
		&core.ID, &itemType, &core.Title, &core.Description, &core.ReleaseDate, &core.Language,
		&core.Genres, &core.Tags, &core.CoverImageURL, &core.AverageRating, &core.RatingsCount, &core.UpdatedAt,
		&authors, &publisher, &pageCount, &currentPage, &bookFormat,
		&duration, &platform, &timePlayed,
	)
	if err != nil {
		return nil, err
	}

	item, err := collectible.New(collectible.Kind(itemType))
	if err != nil {
		return nil, fmt.Errorf("postgres: corrupt item %s: %w", core.ID, err)
	}
	core.Details = item.Details

	switch details := core.Details.(type) {
	case *collectible.Book:
		details.Authors = authors
		details.Publisher = publisher
		details.PageCount = pageCount
		details.CurrentPage = currentPage
		if bookFormat != nil {
			format := collectible.BookFormat(*bookFormat)
			details.Format = &format
		}
	case *collectible.Movie:
		details.Duration = duration
	case *collectible.Game:
		details.Platform = platform
		details.TimePlayed = timePlayed
	}

	entry.Status = Status(status)
	entry.Item = &core
	return &entry, nil
}

// itemValues returns the arguments for every column of schema.CollectionItem, in order.
func itemValues(item *collectible.Item) []any {
	var (
		authors     []string
		publisher   string
		pageCount   *int
		currentPage *int
		bookFormat  *string
		duration    *float64
		platform    string
		timePlayed  float64
	)

	switch details := item.Details.(type) {
	case *collectible.Book:
		authors = details.Authors
		publisher = details.Publisher
		pageCount = details.PageCount
		currentPage = details.CurrentPage
		if details.Format != nil {
			format := string(*details.Format)
			bookFormat = &format
		}
	case *collectible.Movie:
		duration = details.Duration
	case *collectible.Game:
		platform = details.Platform
		timePlayed = details.TimePlayed
	}

	return []any{
		item.ID, string(item.Kind()), item.Title, item.Description, item.ReleaseDate, item.Language,
		item.Genres, item.Tags, item.CoverImageURL, item.AverageRating, item.RatingsCount, item.UpdatedAt,
		authors, publisher, pageCount, currentPage, bookFormat,
		duration, platform, timePlayed,
	}
}

// entryValues returns the arguments for every column of schema.CollectionUserItem, in order.
func entryValues(entry *Entry) []any {
	return []any{
		entry.ID, entry.UserID, entry.ItemID, string(entry.Status), entry.UserRating, entry.Notes,
		entry.DateAdded, entry.DateStarted, entry.DateCompleted, entry.UpdatedAt,
	}
}

// # Query Helpers

// whereClause renders the filter as a WHERE clause whose first argument is userID.
func whereClause(userID string, filter Filter) (string, []any) {
	conditions := []string{fmt.Sprintf("u.%s = $1", schema.CollectionUserItem.UserID)}
	args := []any{userID}

	add := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if filter.Kind != "" {
		add("i."+schema.CollectionItem.ItemType+" = $%d", string(filter.Kind))
	}

	if filter.Status != "" {
		add("u."+schema.CollectionUserItem.Status+" = $%d", string(filter.Status))
	}

	if filter.Term != "" {
		add(fmt.Sprintf("(i.%s ILIKE $%%[1]d OR i.%s ILIKE $%%[1]d)",
			schema.CollectionItem.Title, schema.CollectionItem.Description),
			"%"+likeEscaper.Replace(filter.Term)+"%")
	}

	if len(filter.ExcludedExternalIDs) > 0 {
		externalID := schema.CollectionExternalID
		add(fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s x WHERE x.%s = i.%s AND x.%s = ANY($%%d::text[]))",
			externalID.Table, externalID.ItemID, schema.CollectionItem.ID, externalID.Identifier),
			filter.ExcludedExternalIDs)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// stringSet runs a single-column query and collects the values into a set.
func (repository *PostgresRepository) stringSet(context context.Context, query, action string, args ...any) (map[string]bool, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Collection", action)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "Collection", action)
	}

	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set, nil
}

// placeholders renders "$from, ..., $(from+count-1)".
func placeholders(from, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

// assignments renders "col = $from, ..." for an UPDATE statement.
func assignments(columns []string, from int) string {
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s = $%d", column, from+i)
	}
	return strings.Join(parts, ", ")
}

func prefixed(alias string, columns []string) []string {
	return slice.Map(columns, func(column string) string { return alias + "." + column })
}
