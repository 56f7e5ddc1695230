package data

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	AuthenticationScope = "authentication"
)

type TokenModel struct {
	db *bun.DB
}

type Token struct {
	bun.BaseModel `bun:"table:tokens,alias:t"`
	PlainText     string    `json:"token" bun:"-"` // ignoring this field
	Hash          []byte    `json:"-" bun:",pk,type:bytea"`
	UserID        uuid.UUID `json:"-" bun:",notnull,type:uuid"`
	User          *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Expiry        time.Time `json:"expiry" bun:",notnull"`
	Scope         string    `json:"-" bun:",notnull"`
}

func tokenHash(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

func generateToken(userID uuid.UUID, ttl time.Duration, scope string) (*Token, error) {
	nToken := &Token{
		Expiry: time.Now().Add(ttl).UTC(),
		UserID: userID,
		Scope:  scope,
	}

	bs := make([]byte, 16)
	_, err := rand.Read(bs)
	if err != nil {
		return nil, err
	}
	// base32 without padding keeps the token free of characters that need escaping
	nToken.PlainText = base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(bs)
	nToken.Hash = tokenHash(nToken.PlainText)

	return nToken, nil
}

func (tm TokenModel) New(ctx context.Context, ttl time.Duration, userID uuid.UUID, tokenScope string) (*Token, error) {
	nToken, err := generateToken(userID, ttl, tokenScope)
	if err != nil {
		return nil, err
	}
	err = tm.InsertToken(ctx, nToken)
	if err != nil {
		return nil, err
	}
	return nToken, nil
}

func (tm TokenModel) InsertToken(ctx context.Context, t *Token) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	_, err := tm.db.NewInsert().Model(t).Exec(timeoutCtx)
	return err
}

func (tm TokenModel) DeleteAllForUser(ctx context.Context, userID uuid.UUID, scope string) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	_, err := tm.db.NewDelete().Model((*Token)(nil)).Where("user_id = ? AND scope = ?", userID, scope).Exec(timeoutCtx)
	return err
}

// LooksLikeToken reports whether s has the shape of a stateful token plaintext.
func LooksLikeToken(s string) bool {
	if len(s) != 26 {
		return false
	}
	_, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	return err == nil
}
