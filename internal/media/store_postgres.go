// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media provides the PostgreSQL implementation of [Repository].

The aggregate root (media) is deliberately thin in storage: it owns only
its own id and timestamps. Everything else a Medium carries — sources,
tags, replicas — is wired through junction tables (media_sources,
media_tags) or a foreign key (replicas.medium_id) and hydrated on demand
by the tag, source and replica collaborators, never duplicated into this
package's own queries.

Transaction discipline follows §5: every write opens exactly one
transaction spanning all of its effects; fetch_by_ids and the three
paginated readers open none, since none of them compose statements that
require snapshot consistency across each other.
*/
package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hoarder/internal/platform/apperr"
	"github.com/taibuivan/hoarder/internal/platform/constants"
	"github.com/taibuivan/hoarder/internal/platform/ctxutil"
	"github.com/taibuivan/hoarder/internal/platform/dberr"
	"github.com/taibuivan/hoarder/internal/platform/validate"
	"github.com/taibuivan/hoarder/internal/replica"
	"github.com/taibuivan/hoarder/internal/source"
	"github.com/taibuivan/hoarder/internal/tag"
	"github.com/taibuivan/hoarder/pkg/dbtx"
	"github.com/taibuivan/hoarder/pkg/uuidv7"
)

// shallowTagDepth is the Depth every method hydrates tags to when no
// explicit TagDepth is given: ids and scalar fields only.
var shallowTagDepth = tag.Depth{Parent: 0, Child: 0}

// repository implements [Repository] using pgx. It wires the tag,
// source and replica collaborators via [dbtx.Querier] so that a
// compound write can run them inside its own transaction without them
// ever needing to know about pgx.Tx directly.
type repository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewRepository constructs a PostgreSQL backed media repository. There
// is no process-wide singleton: the pool is the only shared resource,
// and it is supplied by the caller, along with the base logger every
// structured log line is built from.
func NewRepository(pool *pgxpool.Pool, log *slog.Logger) Repository {
	return &repository{pool: pool, log: log}
}

// loggerFrom resolves the logger for one call: the repository's
// constructor-injected logger is used when set, falling back to a
// context-scoped logger (attached via ctxutil.WithLogger) otherwise;
// either is further annotated with the inbound request id when one is
// present on ctx.
func (r *repository) loggerFrom(ctx context.Context) *slog.Logger {
	log := r.log
	if log == nil {
		log = ctxutil.GetLogger(ctx)
	}
	if reqID := ctxutil.GetRequestID(ctx); reqID != "" {
		log = log.With(slog.String("request_id", reqID))
	}
	return log
}

// collaborators bundles the tag/source/replica collaborators and the
// querier they (and this package's own association lookups) run
// against — either r.pool for standalone reads, or an open transaction
// for compound writes.
type collaborators struct {
	db       dbtx.Querier
	tags     tag.Hydrator
	sources  source.Hydrator
	replicas replica.Accessor
	log      *slog.Logger
}

func newCollaborators(db dbtx.Querier, log *slog.Logger) collaborators {
	return collaborators{
		db:       db,
		tags:     tag.NewHydrator(db),
		sources:  source.NewHydrator(db),
		replicas: replica.NewAccessor(db),
		log:      log,
	}
}

// # Create

/*
Create persists a new medium and its initial associations in a single
transaction, then hydrates the result per opts.
*/
func (r *repository) Create(ctx context.Context, sourceIDs []string, createdAt *time.Time, tagPairs []TagPair, opts FetchOptions) (*Medium, error) {
	sourceIDs = dedupStrings(sourceIDs)
	tagPairs = dedupPairs(tagPairs)

	if err := validateIDs("source_ids", sourceIDs); err != nil {
		return nil, err
	}
	if err := validateTagPairs("tag_pairs", tagPairs); err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", "")
	}
	defer tx.Rollback(ctx)

	id := uuidv7.New()
	stamp := time.Now().UTC()
	if createdAt != nil {
		stamp = createdAt.UTC()
	}

	const insertMedium = `INSERT INTO media.media (id, created_at, updated_at) VALUES ($1, $2, $2)`
	if _, err := tx.Exec(ctx, insertMedium, id, stamp); err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}

	if err := insertMediaSources(ctx, tx, id, sourceIDs); err != nil {
		return nil, err
	}
	if err := insertMediaTags(ctx, tx, id, tagPairs); err != nil {
		return nil, err
	}

	effectiveOpts := opts
	effectiveOpts.IncludeSources = effectiveOpts.IncludeSources || len(sourceIDs) > 0

	log := r.loggerFrom(ctx)
	medium, err := hydrateOne(ctx, newCollaborators(tx, log), id, stamp, stamp, effectiveOpts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}
	log.Info("medium_created", slog.String("medium_id", id))
	return medium, nil
}

// insertMediaSources wires sourceIDs to mediumID, colliding silently on
// an already-wired pair. A foreign key violation means sourceID does
// not exist and surfaces as NotFound(Source).
func insertMediaSources(ctx context.Context, tx pgx.Tx, mediumID string, sourceIDs []string) error {
	if len(sourceIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, sid := range sourceIDs {
		batch.Queue(`INSERT INTO media.media_sources (medium_id, source_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, mediumID, sid)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for _, sid := range sourceIDs {
		if _, err := results.Exec(); err != nil {
			if _, ok := asForeignKeyViolation(err); ok {
				return apperr.NotFound("Source", sid)
			}
			return dberr.Wrap(err, "Medium", mediumID)
		}
	}
	return nil
}

// insertMediaTags wires tagPairs to mediumID, colliding silently on an
// already-wired pair.
func insertMediaTags(ctx context.Context, tx pgx.Tx, mediumID string, tagPairs []TagPair) error {
	if len(tagPairs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range tagPairs {
		batch.Queue(`INSERT INTO media.media_tags (medium_id, tag_id, tag_type_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, mediumID, p.TagID, p.TagTypeID)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for _, p := range tagPairs {
		if _, err := results.Exec(); err != nil {
			if pgErr, ok := asForeignKeyViolation(err); ok {
				if strings.Contains(pgErr.ConstraintName, "tag_type_id") {
					return apperr.NotFound("TagType", p.TagTypeID)
				}
				return apperr.NotFound("Tag", p.TagID)
			}
			return dberr.Wrap(err, "Medium", mediumID)
		}
	}
	return nil
}

// removeMediaSources unwires sourceIDs from mediumID; absent pairs are
// no-ops.
func removeMediaSources(ctx context.Context, tx pgx.Tx, mediumID string, sourceIDs []string) error {
	if len(sourceIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `DELETE FROM media.media_sources WHERE medium_id = $1 AND source_id = ANY($2)`, mediumID, sourceIDs); err != nil {
		return dberr.Wrap(err, "Medium", mediumID)
	}
	return nil
}

// removeMediaTags unwires tagPairs from mediumID via a VALUES list so
// that removing any count of pairs is a single round trip.
func removeMediaTags(ctx context.Context, tx pgx.Tx, mediumID string, tagPairs []TagPair) error {
	if len(tagPairs) == 0 {
		return nil
	}

	var b strings.Builder
	args := []any{mediumID}
	b.WriteString(`DELETE FROM media.media_tags WHERE medium_id = $1 AND (tag_id, tag_type_id) IN (`)
	for i, p := range tagPairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, p.TagID, p.TagTypeID)
	}
	b.WriteString(")")

	if _, err := tx.Exec(ctx, b.String(), args...); err != nil {
		return dberr.Wrap(err, "Medium", mediumID)
	}
	return nil
}

// asForeignKeyViolation reports whether err is a foreign key violation
// and, if so, returns the underlying error so callers can inspect
// ConstraintName to tell which reference was dangling (e.g.
// media_tags_tag_id_fkey vs. media_tags_tag_type_id_fkey).
func asForeignKeyViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return pgErr, true
	}
	return nil, false
}

// # FetchByIDs

/*
FetchByIDs returns the hydrated media for ids, ordered by (created_at,
id) ascending. No transaction is opened.
*/
func (r *repository) FetchByIDs(ctx context.Context, ids []string, opts FetchOptions) ([]Medium, error) {
	ids = dedupStrings(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	if err := validateIDs("ids", ids); err != nil {
		return nil, err
	}

	const q = `SELECT id, created_at, updated_at FROM media.media WHERE id = ANY($1) ORDER BY created_at ASC, id ASC`
	return r.collectAndHydrate(ctx, q, []any{ids}, opts)
}

// # Paginated readers

/*
FetchBySourceIDs returns media sharing at least one of sourceIDs
(disjunction).
*/
func (r *repository) FetchBySourceIDs(ctx context.Context, sourceIDs []string, window Window, opts FetchOptions) ([]Medium, error) {
	sourceIDs = dedupStrings(sourceIDs)
	if len(sourceIDs) == 0 {
		return nil, nil
	}
	if err := validateIDs("source_ids", sourceIDs); err != nil {
		return nil, err
	}

	predicate := `EXISTS (SELECT 1 FROM media.media_sources ms WHERE ms.medium_id = m.id AND ms.source_id = ANY($1))`
	return r.fetchWindowed(ctx, window, opts, "", predicate, []any{sourceIDs}, "")
}

/*
FetchByTagIDs returns media associated with every pair in tagPairs
(conjunction), realized as a join against a VALUES list of the
requested pairs followed by a HAVING COUNT(DISTINCT ...) = N clause so
that a medium only qualifies once it has matched every pair.
*/
func (r *repository) FetchByTagIDs(ctx context.Context, tagPairs []TagPair, window Window, opts FetchOptions) ([]Medium, error) {
	tagPairs = dedupPairs(tagPairs)
	if len(tagPairs) == 0 {
		return nil, nil
	}
	if err := validateTagPairs("tag_pairs", tagPairs); err != nil {
		return nil, err
	}

	var values strings.Builder
	args := make([]any, 0, len(tagPairs)*2)
	for i, p := range tagPairs {
		if i > 0 {
			values.WriteString(", ")
		}
		fmt.Fprintf(&values, "($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, p.TagID, p.TagTypeID)
	}

	join := fmt.Sprintf(`JOIN media.media_tags mt ON mt.medium_id = m.id
		JOIN (VALUES %s) AS wanted(tag_id, tag_type_id)
			ON mt.tag_id = wanted.tag_id AND mt.tag_type_id = wanted.tag_type_id`, values.String())
	having := fmt.Sprintf("HAVING COUNT(DISTINCT (mt.tag_id, mt.tag_type_id)) = %d", len(tagPairs))

	return r.fetchWindowed(ctx, window, opts, join, "", args, having)
}

/*
FetchAll returns all media, keyset-paginated per Window.
*/
func (r *repository) FetchAll(ctx context.Context, window Window, opts FetchOptions) ([]Medium, error) {
	return r.fetchWindowed(ctx, window, opts, "", "", nil, "")
}

// fetchWindowed is the shared keyset-pagination query builder behind
// FetchBySourceIDs, FetchByTagIDs and FetchAll. join/predicate/having
// are raw SQL fragments specific to each caller; predicate, if set,
// must reference only placeholders already present in args (it is not
// itself parameterized by this function).
func (r *repository) fetchWindowed(ctx context.Context, window Window, opts FetchOptions, join, predicate string, args []any, having string) ([]Medium, error) {
	var b strings.Builder
	b.WriteString("SELECT m.id, m.created_at, m.updated_at FROM media.media m ")
	b.WriteString(join)
	b.WriteString(" WHERE 1=1")

	if predicate != "" {
		b.WriteString(" AND ")
		b.WriteString(predicate)
	}

	if window.Since != nil {
		args = append(args, window.Since.CreatedAt, window.Since.ID)
		fmt.Fprintf(&b, " AND (m.created_at, m.id) > ($%d, $%d)", len(args)-1, len(args))
	}
	if window.Until != nil {
		args = append(args, window.Until.CreatedAt, window.Until.ID)
		fmt.Fprintf(&b, " AND (m.created_at, m.id) < ($%d, $%d)", len(args)-1, len(args))
	}

	if having != "" {
		b.WriteString(" GROUP BY m.id ")
		b.WriteString(having)
	}

	scanOrder := "ASC"
	if window.Direction == Descending {
		scanOrder = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY m.created_at %s, m.id %s", scanOrder, scanOrder)

	limit := window.Limit
	if limit <= 0 {
		limit = constants.DefaultFetchLimit
	}
	if limit > constants.MaxFetchLimit {
		limit = constants.MaxFetchLimit
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	return r.collectAndHydrate(ctx, b.String(), args, opts)
}

// collectAndHydrate runs query, scans the (id, created_at, updated_at)
// projection every reader shares, and hydrates each row per opts.
func (r *repository) collectAndHydrate(ctx context.Context, query string, args []any, opts FetchOptions) ([]Medium, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", "")
	}

	type row struct {
		id        string
		createdAt time.Time
		updatedAt time.Time
	}
	var found []row
	for rows.Next() {
		var rr row
		if err := rows.Scan(&rr.id, &rr.createdAt, &rr.updatedAt); err != nil {
			rows.Close()
			return nil, dberr.Wrap(err, "Medium", "")
		}
		found = append(found, rr)
	}
	scanErr := rows.Err()
	rows.Close()
	if scanErr != nil {
		return nil, dberr.Wrap(scanErr, "Medium", "")
	}

	collab := newCollaborators(r.pool, r.loggerFrom(ctx))
	out := make([]Medium, 0, len(found))
	for _, rr := range found {
		m, err := hydrateOne(ctx, collab, rr.id, rr.createdAt, rr.updatedAt, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

// # UpdateByID

/*
UpdateByID applies the five-step compound mutation of §4.1 inside a
single transaction: overwrite created_at, unwire then wire source
associations, unwire then wire tag associations, reorder replicas,
stamp updated_at.
*/
func (r *repository) UpdateByID(ctx context.Context, id string, params UpdateParams) (*Medium, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	if err := validateIDs("add_source_ids", dedupStrings(params.AddSourceIDs)); err != nil {
		return nil, err
	}
	if err := validateIDs("remove_source_ids", dedupStrings(params.RemoveSourceIDs)); err != nil {
		return nil, err
	}
	if err := validateTagPairs("add_tag_pairs", dedupPairs(params.AddTagPairs)); err != nil {
		return nil, err
	}
	if err := validateTagPairs("remove_tag_pairs", dedupPairs(params.RemoveTagPairs)); err != nil {
		return nil, err
	}
	if params.ReplicaOrder != nil {
		if err := validateIDs("replica_order", params.ReplicaOrder); err != nil {
			return nil, err
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}
	defer tx.Rollback(ctx)

	var createdAt, updatedAt time.Time
	const selectForUpdate = `SELECT created_at, updated_at FROM media.media WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRow(ctx, selectForUpdate, id).Scan(&createdAt, &updatedAt); err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}

	// 1. overwrite created_at
	if params.CreatedAt != nil {
		createdAt = params.CreatedAt.UTC()
		if _, err := tx.Exec(ctx, `UPDATE media.media SET created_at = $1 WHERE id = $2`, createdAt, id); err != nil {
			return nil, dberr.Wrap(err, "Medium", id)
		}
	}

	// 2. sources: remove before add
	if err := removeMediaSources(ctx, tx, id, dedupStrings(params.RemoveSourceIDs)); err != nil {
		return nil, err
	}
	if err := insertMediaSources(ctx, tx, id, dedupStrings(params.AddSourceIDs)); err != nil {
		return nil, err
	}

	// 3. tags: remove before add
	if err := removeMediaTags(ctx, tx, id, dedupPairs(params.RemoveTagPairs)); err != nil {
		return nil, err
	}
	if err := insertMediaTags(ctx, tx, id, dedupPairs(params.AddTagPairs)); err != nil {
		return nil, err
	}

	log := r.loggerFrom(ctx)

	// 4. replica reorder
	if params.ReplicaOrder != nil {
		if err := replica.NewAccessor(tx).Reorder(ctx, id, params.ReplicaOrder); err != nil {
			return nil, err
		}
		log.Info("replica_reordered", slog.String("medium_id", id), slog.Int("count", len(params.ReplicaOrder)))
	}

	// 5. stamp updated_at, strictly after the prior value
	updatedAt = nowAfter(updatedAt)
	if _, err := tx.Exec(ctx, `UPDATE media.media SET updated_at = $1 WHERE id = $2`, updatedAt, id); err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}

	effectiveOpts := FetchOptions{TagDepth: params.TagDepth, IncludeReplicas: params.IncludeReplicas, IncludeSources: params.IncludeSources}

	medium, err := hydrateOne(ctx, newCollaborators(tx, log), id, createdAt, updatedAt, effectiveOpts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "Medium", id)
	}
	log.Info("medium_updated", slog.String("medium_id", id))
	return medium, nil
}

// nowAfter returns a timestamp strictly after prior, tolerating a clock
// whose resolution is coarser than the column type.
func nowAfter(prior time.Time) time.Time {
	now := time.Now().UTC()
	if now.After(prior) {
		return now
	}
	return prior.Add(time.Microsecond)
}

// # DeleteByID

/*
DeleteByID removes a medium, cascading to its replicas and association
rows in the same transaction.
*/
func (r *repository) DeleteByID(ctx context.Context, id string) (DeleteResult, error) {
	if err := validateID("id", id); err != nil {
		return DeleteResult{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM media.media_sources WHERE medium_id = $1`, id); err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM media.media_tags WHERE medium_id = $1`, id); err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM media.replicas WHERE medium_id = $1`, id); err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM media.media WHERE id = $1`, id)
	if err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}
	if cmd.RowsAffected() == 0 {
		return DeleteResult{}, apperr.NotFound("Medium", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return DeleteResult{}, dberr.Wrap(err, "Medium", id)
	}
	return DeleteResult{Deleted: 1}, nil
}

// # Hydration assembly

// hydrateOne assembles a Medium from its scalar row plus whatever
// sources/tags/replicas opts requests, applying the canonical ordering
// of §8 property 5.
func hydrateOne(ctx context.Context, collab collaborators, id string, createdAt, updatedAt time.Time, opts FetchOptions) (*Medium, error) {
	m := &Medium{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}

	if opts.IncludeSources {
		sourceIDs, err := mediumSourceIDs(ctx, collab.db, id)
		if err != nil {
			return nil, err
		}
		if len(sourceIDs) > 0 {
			hydrated, err := collab.sources.Hydrate(ctx, sourceIDs)
			if err != nil {
				return nil, err
			}
			sort.Slice(hydrated, func(i, j int) bool { return hydrated[i].ID < hydrated[j].ID })
			m.Sources = hydrated
		}
	}

	// tags are never silently omitted from the aggregate: a nil TagDepth
	// still hydrates to the shallow default, it only controls depth.
	depth := shallowTagDepth
	if opts.TagDepth != nil {
		depth = *opts.TagDepth
	}
	groups, err := mediumTagGroups(ctx, collab, id, depth)
	if err != nil {
		if collab.log != nil {
			collab.log.Warn("tag_hydration_failed", slog.String("medium_id", id), slog.Any("error", err))
		}
		return nil, err
	}
	m.Tags = groups

	if opts.IncludeReplicas {
		replicas, err := collab.replicas.List(ctx, id)
		if err != nil {
			return nil, err
		}
		m.Replicas = replicas
	}

	return m, nil
}

// mediumSourceIDs returns the source ids wired to mediumID via
// media_sources. Association lookups belong to this package: the
// source collaborator only knows how to hydrate ids it is handed.
func mediumSourceIDs(ctx context.Context, db dbtx.Querier, mediumID string) ([]string, error) {
	rows, err := db.Query(ctx, `SELECT source_id FROM media.media_sources WHERE medium_id = $1`, mediumID)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "Medium", mediumID)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	return ids, nil
}

// mediumTagPairs returns the (tag_id, tag_type_id) pairs wired to
// mediumID via media_tags.
func mediumTagPairs(ctx context.Context, db dbtx.Querier, mediumID string) ([]TagPair, error) {
	rows, err := db.Query(ctx, `SELECT tag_id, tag_type_id FROM media.media_tags WHERE medium_id = $1`, mediumID)
	if err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	defer rows.Close()

	var pairs []TagPair
	for rows.Next() {
		var p TagPair
		if err := rows.Scan(&p.TagID, &p.TagTypeID); err != nil {
			return nil, dberr.Wrap(err, "Medium", mediumID)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Medium", mediumID)
	}
	return pairs, nil
}

// tagTypesByID fetches the TagType rows for ids in one round trip.
func tagTypesByID(ctx context.Context, db dbtx.Querier, ids []string) (map[string]tag.TagType, error) {
	ids = dedupStrings(ids)
	out := make(map[string]tag.TagType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx, `SELECT id, slug, name FROM media.tag_types WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "TagType", "")
	}
	defer rows.Close()

	for rows.Next() {
		var t tag.TagType
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "TagType", "")
		}
		out[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "TagType", "")
	}
	return out, nil
}

// mediumTagGroups assembles the Medium.Tags field: the medium's tag
// pairs, hydrated to depth and grouped by tag type, in canonical order
// ((slug, id) across groups; (kana, name, id) within a group).
func mediumTagGroups(ctx context.Context, collab collaborators, mediumID string, depth tag.Depth) ([]TagGroup, error) {
	pairs, err := mediumTagPairs(ctx, collab.db, mediumID)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	tagIDs := make([]string, 0, len(pairs))
	typeIDs := make([]string, 0, len(pairs))
	typeIDsByTag := make(map[string][]string, len(pairs))
	for _, p := range pairs {
		tagIDs = append(tagIDs, p.TagID)
		typeIDs = append(typeIDs, p.TagTypeID)
		typeIDsByTag[p.TagID] = append(typeIDsByTag[p.TagID], p.TagTypeID)
	}

	materialized, err := collab.tags.Hydrate(ctx, tagIDs, depth)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]tag.Materialized, len(materialized))
	for _, m := range materialized {
		byID[m.ID] = m
	}

	types, err := tagTypesByID(ctx, collab.db, typeIDs)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*TagGroup, len(types))
	for _, p := range pairs {
		m, ok := byID[p.TagID]
		if !ok {
			continue // tag id no longer exists; treat as absent, like the hydrator does for parents
		}
		t, ok := types[p.TagTypeID]
		if !ok {
			continue
		}

		g, ok := grouped[p.TagTypeID]
		if !ok {
			g = &TagGroup{Type: t}
			grouped[p.TagTypeID] = g
		}
		g.Tags = append(g.Tags, m)
	}

	out := make([]TagGroup, 0, len(grouped))
	for _, g := range grouped {
		sortMaterialized(g.Tags)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type.Slug != out[j].Type.Slug {
			return out[i].Type.Slug < out[j].Type.Slug
		}
		return out[i].Type.ID < out[j].Type.ID
	})
	return out, nil
}

func sortMaterialized(tags []tag.Materialized) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kana != tags[j].Kana {
			return tags[i].Kana < tags[j].Kana
		}
		if tags[i].Name != tags[j].Name {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].ID < tags[j].ID
	})
}

// # Shared helpers

func dedupStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// validateID checks that id is a non-empty, well-formed UUID. Used at
// every method boundary that takes a single entity id, before it ever
// reaches a query.
func validateID(field, id string) error {
	v := &validate.Validator{}
	v.Required(field, id).UUID(field, id)
	return v.Err()
}

// validateIDs checks that every entry of ids is a well-formed UUID.
func validateIDs(field string, ids []string) error {
	v := &validate.Validator{}
	for i, id := range ids {
		v.UUID(fmt.Sprintf("%s[%d]", field, i), id)
	}
	return v.Err()
}

// validateTagPairs checks that every pair's tag_id and tag_type_id are
// well-formed UUIDs.
func validateTagPairs(field string, pairs []TagPair) error {
	v := &validate.Validator{}
	for i, p := range pairs {
		v.UUID(fmt.Sprintf("%s[%d].tag_id", field, i), p.TagID)
		v.UUID(fmt.Sprintf("%s[%d].tag_type_id", field, i), p.TagTypeID)
	}
	return v.Err()
}

func dedupPairs(in []TagPair) []TagPair {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[TagPair]struct{}, len(in))
	out := make([]TagPair, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
