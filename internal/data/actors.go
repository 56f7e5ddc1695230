package data

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/uptrace/bun"
)

type Actor struct {
	bun.BaseModel `bun:"table:actors,alias:a"`
	ID            int64  `json:"id" bun:",pk,autoincrement"`
	FirstName     string `json:"first_name" bun:",notnull"`
	LastName      string `json:"last_name" bun:",notnull"`
}

type ActorModel struct {
	db *bun.DB
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

// MarshalJSON adds the derived full_name to the stored fields.
func (a Actor) MarshalJSON() ([]byte, error) {
	aux := struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		FullName  string `json:"full_name"`
	}{a.ID, a.FirstName, a.LastName, a.FullName()}
	return json.Marshal(aux)
}

func (a Actor) Validator(v *Validator) {
	v.Check(strings.TrimSpace(a.FirstName) != "", "first_name", "must be provided")
	v.Check(len(a.FirstName) <= 255, "first_name", "must not be more than 255 bytes long")
	v.Check(strings.TrimSpace(a.LastName) != "", "last_name", "must be provided")
	v.Check(len(a.LastName) <= 255, "last_name", "must not be more than 255 bytes long")
}

func (am ActorModel) Insert(ctx context.Context, actor *Actor) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	_, err := am.db.NewInsert().Model(actor).Returning("id").Exec(timeoutCtx)
	return err
}

// List returns actors whose first or last name contains name, case-insensitively.
func (am ActorModel) List(ctx context.Context, name string) ([]Actor, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	actors := []Actor{}
	q := am.db.NewSelect().Model(&actors).OrderExpr("a.id ASC")
	if name != "" {
		pattern := "%" + strings.ToLower(name) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lower(a.first_name) LIKE ?", pattern).WhereOr("lower(a.last_name) LIKE ?", pattern)
		})
	}
	if err := q.Scan(timeoutCtx); err != nil {
		return nil, err
	}
	return actors, nil
}
