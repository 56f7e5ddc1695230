package data

import (
	"context"
	"strings"

	"github.com/uptrace/bun"
)

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`
	ID            int64  `json:"id" bun:",pk,autoincrement"`
	Name          string `json:"name" bun:",notnull,unique"`
}

type GenreModel struct {
	db *bun.DB
}

func (g Genre) Validator(v *Validator) {
	v.Check(strings.TrimSpace(g.Name) != "", "name", "must be provided")
	v.Check(len(g.Name) <= 255, "name", "must not be more than 255 bytes long")
}

func (gm GenreModel) Insert(ctx context.Context, genre *Genre) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	_, err := gm.db.NewInsert().Model(genre).Returning("id").Exec(timeoutCtx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrorDuplicateGenre
		}
		return err
	}
	return nil
}

func (gm GenreModel) List(ctx context.Context, name string) ([]Genre, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	genres := []Genre{}
	q := gm.db.NewSelect().Model(&genres).OrderExpr("g.id ASC")
	if name != "" {
		q = q.Where("lower(g.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if err := q.Scan(timeoutCtx); err != nil {
		return nil, err
	}
	return genres, nil
}
