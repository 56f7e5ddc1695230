package data

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:m"`
	ID            int64     `json:"id" bun:",pk,autoincrement"`                           // ID is the identifier of the movie
	CreatedAt     time.Time `json:"-" bun:",nullzero,notnull,default:current_timestamp"` // timestamp when the movie is added to the database
	Title         string    `json:"title" bun:",notnull"`                                 // Movie title
	Description   string    `json:"description" bun:",notnull"`                           // Short synopsis
	Duration      int32     `json:"duration" bun:",notnull"`                              // Duration in minutes
	Image         *string   `json:"image" bun:",nullzero"`                                // Reference to the uploaded poster, if any
	Genres        []Genre   `json:"genres" bun:"m2m:movie_genres,join:Movie=Genre"`       // Genres of the movie
	Actors        []Actor   `json:"actors" bun:"m2m:movie_actors,join:Movie=Actor"`       // Cast of the movie
}

// junction table for the movie <-> genre relationship
type MovieGenre struct {
	bun.BaseModel `bun:"table:movie_genres,alias:mg"`
	MovieID       int64  `bun:",pk"`
	Movie         *Movie `bun:"rel:belongs-to,join:movie_id=id"`
	GenreID       int64  `bun:",pk"`
	Genre         *Genre `bun:"rel:belongs-to,join:genre_id=id"`
}

// junction table for the movie <-> actor relationship
type MovieActor struct {
	bun.BaseModel `bun:"table:movie_actors,alias:ma"`
	MovieID       int64  `bun:",pk"`
	Movie         *Movie `bun:"rel:belongs-to,join:movie_id=id"`
	ActorID       int64  `bun:",pk"`
	Actor         *Actor `bun:"rel:belongs-to,join:actor_id=id"`
}

// MovieListItem is the list representation of a movie: relations are flattened
// to genre names and actor full names.
type MovieListItem struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int32    `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Image       *string  `json:"image"`
}

// MovieFilters narrows a movie listing. Empty fields don't filter.
type MovieFilters struct {
	Title    string
	GenreIDs []int64
	ActorIDs []int64
	Filters
}

type MovieModel struct {
	db *bun.DB
}

func (m Movie) Validator(nValidator *Validator) {
	nValidator.Check(strings.TrimSpace(m.Title) != "", "title", "must be provided")
	nValidator.Check(len(m.Title) <= 255, "title", "must not be more than 255 bytes long")
	nValidator.Check(strings.TrimSpace(m.Description) != "", "description", "must be provided")
	nValidator.Check(m.Duration != 0, "duration", "must be provided")
	nValidator.Check(m.Duration > 0, "duration", "must be a positive integer")
}

// ListItem converts m into its list representation.
func (m *Movie) ListItem() MovieListItem {
	item := MovieListItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Genres:      make([]string, 0, len(m.Genres)),
		Actors:      make([]string, 0, len(m.Actors)),
		Image:       m.Image,
	}
	for _, g := range m.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	for _, a := range m.Actors {
		item.Actors = append(item.Actors, a.FullName())
	}
	return item
}

// normalize keeps the relation keys present in JSON output even when empty
// and gives relations a stable order.
func (m *Movie) normalize() {
	if m.Genres == nil {
		m.Genres = []Genre{}
	}
	if m.Actors == nil {
		m.Actors = []Actor{}
	}
	slices.SortFunc(m.Genres, func(a, b Genre) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(m.Actors, func(a, b Actor) int { return cmp.Compare(a.ID, b.ID) })
}

// Insert stores movie together with its genre and actor links. Every referenced
// id must exist, otherwise ErrorInvalidReference is returned and nothing is written.
func (mm *MovieModel) Insert(ctx context.Context, movie *Movie, genreIDs, actorIDs []int64) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	genreIDs, actorIDs = dedupe(genreIDs), dedupe(actorIDs)

	return mm.db.RunInTx(timeoutCtx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, genreIDs, actorIDs); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(movie).Returning("id").Exec(ctx)
		if err != nil {
			return err
		}
		return linkRelations(ctx, tx, movie.ID, genreIDs, actorIDs)
	})
}

// Update writes the scalar fields of movie. A nil id slice leaves that relation untouched,
// a non-nil one replaces it.
func (mm *MovieModel) Update(ctx context.Context, movie *Movie, genreIDs, actorIDs []int64) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	return mm.db.RunInTx(timeoutCtx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, dedupe(genreIDs), dedupe(actorIDs)); err != nil {
			return err
		}
		result, err := tx.NewUpdate().Model(movie).Column("title", "description", "duration", "image").WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrorRecordNotFound
		}
		if genreIDs != nil {
			if _, err := tx.NewDelete().Model((*MovieGenre)(nil)).Where("movie_id = ?", movie.ID).Exec(ctx); err != nil {
				return err
			}
		}
		if actorIDs != nil {
			if _, err := tx.NewDelete().Model((*MovieActor)(nil)).Where("movie_id = ?", movie.ID).Exec(ctx); err != nil {
				return err
			}
		}
		return linkRelations(ctx, tx, movie.ID, dedupe(genreIDs), dedupe(actorIDs))
	})
}

// SetImage records the stored image reference of the movie with the given id.
func (mm *MovieModel) SetImage(ctx context.Context, id int64, image string) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	result, err := mm.db.NewUpdate().Model((*Movie)(nil)).Set("image = ?", image).Where("id = ?", id).Exec(timeoutCtx)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrorRecordNotFound
	}
	return nil
}

func (mm *MovieModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrorRecordNotFound
	}
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	return mm.db.RunInTx(timeoutCtx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*MovieGenre)(nil)).Where("movie_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*MovieActor)(nil)).Where("movie_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		result, err := tx.NewDelete().Model((*Movie)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrorRecordNotFound
		}
		return nil
	})
}

// Select loads a single movie with its genres and actors.
func (mm *MovieModel) Select(ctx context.Context, id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrorRecordNotFound
	}
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	nMovie := &Movie{}
	err := mm.db.NewSelect().Model(nMovie).Relation("Genres").Relation("Actors").Where("m.id = ?", id).Scan(timeoutCtx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrorRecordNotFound
		default:
			return nil, err
		}
	}
	nMovie.normalize()
	return nMovie, nil
}

// List returns the movies matching filters. Parameters are combined with AND;
// genre and actor ids match movies linked to any of them.
func (mm *MovieModel) List(ctx context.Context, filters *MovieFilters) ([]Movie, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	movies := []Movie{}
	q := mm.db.NewSelect().Model(&movies).Relation("Genres").Relation("Actors")
	if filters.Title != "" {
		pattern := containsPattern(strings.ToLower(filters.Title))
		if mm.db.Dialect().Name() == dialect.PG {
			q = q.Where(`m.title ILIKE ? ESCAPE '\'`, pattern)
		} else {
			q = q.Where(`casefold(m.title) LIKE ? ESCAPE '\'`, pattern)
		}
	}
	if len(filters.GenreIDs) > 0 {
		q = q.Where("m.id IN (SELECT mg.movie_id FROM movie_genres AS mg WHERE mg.genre_id IN (?))", bun.In(filters.GenreIDs))
	}
	if len(filters.ActorIDs) > 0 {
		q = q.Where("m.id IN (SELECT ma.movie_id FROM movie_actors AS ma WHERE ma.actor_id IN (?))", bun.In(filters.ActorIDs))
	}
	q = filters.orderBy(q, "m")

	if err := q.Scan(timeoutCtx); err != nil {
		return nil, err
	}
	for i := range movies {
		movies[i].normalize()
	}
	return movies, nil
}

func checkReferences(ctx context.Context, db bun.IDB, genreIDs, actorIDs []int64) error {
	if len(genreIDs) > 0 {
		n, err := db.NewSelect().Model((*Genre)(nil)).Where("g.id IN (?)", bun.In(genreIDs)).Count(ctx)
		if err != nil {
			return err
		}
		if n != len(genreIDs) {
			return &ReferenceError{Field: "genres"}
		}
	}
	if len(actorIDs) > 0 {
		n, err := db.NewSelect().Model((*Actor)(nil)).Where("a.id IN (?)", bun.In(actorIDs)).Count(ctx)
		if err != nil {
			return err
		}
		if n != len(actorIDs) {
			return &ReferenceError{Field: "actors"}
		}
	}
	return nil
}

func linkRelations(ctx context.Context, db bun.IDB, movieID int64, genreIDs, actorIDs []int64) error {
	if len(genreIDs) > 0 {
		links := make([]MovieGenre, 0, len(genreIDs))
		for _, id := range genreIDs {
			links = append(links, MovieGenre{MovieID: movieID, GenreID: id})
		}
		if _, err := db.NewInsert().Model(&links).Exec(ctx); err != nil {
			return err
		}
	}
	if len(actorIDs) > 0 {
		links := make([]MovieActor, 0, len(actorIDs))
		for _, id := range actorIDs {
			links = append(links, MovieActor{MovieID: movieID, ActorID: id})
		}
		if _, err := db.NewInsert().Model(&links).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ReferenceError reports which relation field held an unknown id.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return e.Field + ": " + ErrorInvalidReference.Error()
}

func (e *ReferenceError) Unwrap() error {
	return ErrorInvalidReference
}

func dedupe(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// CatalogSize is the number of stored movies, genres and actors.
type CatalogSize struct {
	Movies int
	Genres int
	Actors int
}

func (mm *MovieModel) CatalogSize(ctx context.Context) (CatalogSize, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	var size CatalogSize
	var err error
	if size.Movies, err = mm.db.NewSelect().Model((*Movie)(nil)).Count(timeoutCtx); err != nil {
		return size, err
	}
	if size.Genres, err = mm.db.NewSelect().Model((*Genre)(nil)).Count(timeoutCtx); err != nil {
		return size, err
	}
	if size.Actors, err = mm.db.NewSelect().Model((*Actor)(nil)).Count(timeoutCtx); err != nil {
		return size, err
	}
	return size, nil
}
