package data

import (
	"context"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	ErrorRecordNotFound   = errors.New("record not found")
	ErrorInvalidReference = errors.New("referenced record does not exist")
	ErrorDuplicateGenre   = errors.New("genre with the same name already exists")
)

const queryTimeout = 5 * time.Second

type Models struct {
	Movies MovieModel
	Genres GenreModel
	Actors ActorModel
	Users  UserModel
	Tokens TokenModel
	db     *bun.DB
}

// NewModels registers the many-to-many join models on db. bun refuses to
// resolve m2m relations until they are registered.
func NewModels(db *bun.DB) *Models {
	registerModels(db)
	return &Models{
		Movies: MovieModel{db: db},
		Genres: GenreModel{db: db},
		Actors: ActorModel{db: db},
		Users:  UserModel{db: db},
		Tokens: TokenModel{db: db},
		db:     db,
	}
}

// Ping checks that the database still answers.
func (m *Models) Ping(ctx context.Context) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	return m.db.PingContext(timeoutCtx)
}

func registerModels(db *bun.DB) {
	db.RegisterModel((*MovieGenre)(nil), (*MovieActor)(nil))
}

// isUniqueViolation recognises unique constraint failures from both postgres
// (SQLSTATE 23505) and sqlite.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
