package data

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movieSortFilters(sort string) Filters {
	return Filters{Sort: sort, SortSafeList: []string{"id", "title", "duration", "-id", "-title", "-duration"}}
}

func titles(movies []Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestMovieList(t *testing.T) {
	models := NewModels(newTestDB(t))
	f := seedCatalog(t, models)

	tests := []struct {
		name     string
		filters  MovieFilters
		expected []string
	}{
		{
			name:     "No filters returns every movie",
			filters:  MovieFilters{Filters: movieSortFilters("id")},
			expected: []string{"Funny Movie", "Action Movie"},
		},
		{
			name:     "Title is a case-insensitive substring",
			filters:  MovieFilters{Title: "funny", Filters: movieSortFilters("id")},
			expected: []string{"Funny Movie"},
		},
		{
			name:     "Shared title substring",
			filters:  MovieFilters{Title: "MOVIE", Filters: movieSortFilters("id")},
			expected: []string{"Funny Movie", "Action Movie"},
		},
		{
			name:     "Genre membership",
			filters:  MovieFilters{GenreIDs: []int64{f.action.ID}, Filters: movieSortFilters("id")},
			expected: []string{"Action Movie"},
		},
		{
			name:     "Genre intersection with several ids",
			filters:  MovieFilters{GenreIDs: []int64{f.action.ID, f.comedy.ID}, Filters: movieSortFilters("id")},
			expected: []string{"Funny Movie", "Action Movie"},
		},
		{
			name:     "Actor membership",
			filters:  MovieFilters{ActorIDs: []int64{f.john.ID}, Filters: movieSortFilters("id")},
			expected: []string{"Funny Movie"},
		},
		{
			name:     "Filters are combined",
			filters:  MovieFilters{Title: "action", ActorIDs: []int64{f.john.ID}, Filters: movieSortFilters("id")},
			expected: []string{},
		},
		{
			name:     "Unknown genre yields empty result",
			filters:  MovieFilters{GenreIDs: []int64{9999}, Filters: movieSortFilters("id")},
			expected: []string{},
		},
		{
			name:     "Sorted by title",
			filters:  MovieFilters{Filters: movieSortFilters("title")},
			expected: []string{"Action Movie", "Funny Movie"},
		},
		{
			name:     "Sorted by duration descending",
			filters:  MovieFilters{Filters: movieSortFilters("-duration")},
			expected: []string{"Action Movie", "Funny Movie"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			movies, err := models.Movies.List(context.Background(), &tc.filters)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, titles(movies))
		})
	}
}

func TestMovieListTitleMatching(t *testing.T) {
	models := NewModels(newTestDB(t))
	ctx := context.Background()
	for _, title := range []string{"Funny Movie", "100% Pure", "snake_case Story", `Back\slash`, "Élan Vital"} {
		m := &Movie{Title: title, Description: "desc", Duration: 90}
		require.NoError(t, models.Movies.Insert(ctx, m, nil, nil))
	}

	tests := []struct {
		name     string
		title    string
		expected []string
	}{
		{name: "Underscore is not a wildcard", title: "_", expected: []string{"snake_case Story"}},
		{name: "Percent is not a wildcard", title: "%", expected: []string{"100% Pure"}},
		{name: "Underscore inside a word", title: "f_nny", expected: []string{}},
		{name: "Backslash is literal", title: `k\s`, expected: []string{`Back\slash`}},
		{name: "Non-ASCII case folding", title: "élan", expected: []string{"Élan Vital"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			movies, err := models.Movies.List(ctx, &MovieFilters{Title: tc.title, Filters: movieSortFilters("id")})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, titles(movies))
		})
	}
}

func TestCatalogSize(t *testing.T) {
	models := NewModels(newTestDB(t))
	ctx := context.Background()

	size, err := models.Movies.CatalogSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, CatalogSize{}, size)

	seedCatalog(t, models)
	size, err = models.Movies.CatalogSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, CatalogSize{Movies: 2, Genres: 2, Actors: 2}, size)
}

func TestMovieSelect(t *testing.T) {
	models := NewModels(newTestDB(t))
	f := seedCatalog(t, models)
	ctx := context.Background()

	movie, err := models.Movies.Select(ctx, f.funny.ID)
	require.NoError(t, err)
	assert.Equal(t, "Funny Movie", movie.Title)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Comedy", movie.Genres[0].Name)
	require.Len(t, movie.Actors, 1)
	assert.Equal(t, "John Doe", movie.Actors[0].FullName())

	_, err = models.Movies.Select(ctx, 9999)
	assert.ErrorIs(t, err, ErrorRecordNotFound)

	bare := &Movie{Title: "Silent", Description: "No cast yet", Duration: 10}
	require.NoError(t, models.Movies.Insert(ctx, bare, nil, nil))
	movie, err = models.Movies.Select(ctx, bare.ID)
	require.NoError(t, err)
	assert.NotNil(t, movie.Genres, "expected an empty genre slice, not nil")
	assert.NotNil(t, movie.Actors, "expected an empty actor slice, not nil")
}

func TestMovieInsertRejectsUnknownReferences(t *testing.T) {
	models := NewModels(newTestDB(t))
	f := seedCatalog(t, models)
	ctx := context.Background()

	movie := &Movie{Title: "Ghost", Description: "Unknown genre", Duration: 80}
	err := models.Movies.Insert(ctx, movie, []int64{f.comedy.ID, 4242}, []int64{f.john.ID})
	require.ErrorIs(t, err, ErrorInvalidReference)
	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.Equal(t, "genres", refErr.Field)

	movies, err := models.Movies.List(ctx, &MovieFilters{Filters: movieSortFilters("id")})
	require.NoError(t, err)
	assert.Len(t, movies, 2, "nothing should be written when a reference is invalid")

	dup := &Movie{Title: "Twice", Description: "Duplicated ids", Duration: 80}
	require.NoError(t, models.Movies.Insert(ctx, dup, []int64{f.comedy.ID, f.comedy.ID}, nil))
	stored, err := models.Movies.Select(ctx, dup.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Genres, 1)
}

func TestMovieUpdateAndDelete(t *testing.T) {
	models := NewModels(newTestDB(t))
	f := seedCatalog(t, models)
	ctx := context.Background()

	movie, err := models.Movies.Select(ctx, f.funny.ID)
	require.NoError(t, err)
	movie.Title = "Funnier Movie"
	require.NoError(t, models.Movies.Update(ctx, movie, []int64{f.comedy.ID, f.action.ID}, nil))

	updated, err := models.Movies.Select(ctx, f.funny.ID)
	require.NoError(t, err)
	assert.Equal(t, "Funnier Movie", updated.Title)
	assert.Len(t, updated.Genres, 2)
	assert.Len(t, updated.Actors, 1, "actors should be untouched when not provided")

	require.NoError(t, models.Movies.SetImage(ctx, f.funny.ID, "/media/uploads/movies/funnier.png"))
	updated, err = models.Movies.Select(ctx, f.funny.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Image)
	assert.Equal(t, "/media/uploads/movies/funnier.png", *updated.Image)

	require.NoError(t, models.Movies.Delete(ctx, f.funny.ID))
	_, err = models.Movies.Select(ctx, f.funny.ID)
	assert.ErrorIs(t, err, ErrorRecordNotFound)
	assert.ErrorIs(t, models.Movies.Delete(ctx, f.funny.ID), ErrorRecordNotFound)
	assert.ErrorIs(t, models.Movies.SetImage(ctx, f.funny.ID, "x"), ErrorRecordNotFound)
}

func TestMovieValidator(t *testing.T) {
	tests := []struct {
		name   string
		movie  Movie
		fields []string
	}{
		{name: "Valid movie", movie: Movie{Title: "Valid", Description: "ok", Duration: 100}},
		{name: "Missing everything", movie: Movie{}, fields: []string{"title", "description", "duration"}},
		{name: "Negative duration", movie: Movie{Title: "Neg", Description: "ok", Duration: -5}, fields: []string{"duration"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			tc.movie.Validator(v)
			assert.Len(t, v.Errors, len(tc.fields))
			for _, field := range tc.fields {
				assert.Contains(t, v.Errors, field)
			}
		})
	}
}

func TestMovieListItem(t *testing.T) {
	m := Movie{
		ID:     1,
		Title:  "Funny Movie",
		Genres: []Genre{{ID: 1, Name: "Comedy"}},
		Actors: []Actor{{ID: 1, FirstName: "John", LastName: "Doe"}},
	}
	item := m.ListItem()
	assert.Equal(t, []string{"Comedy"}, item.Genres)
	assert.Equal(t, []string{"John Doe"}, item.Actors)
}
