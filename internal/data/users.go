package data

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrorPasswordTooLong              = errors.New("user password is too long")
	ErrorDuplicateEmail               = errors.New("error user with same email already exist")
	_                    sql.Scanner  = (*Password)(nil)
	_                    driver.Valuer = Password{}
)

// AnonymousUser represents a request that carried no credentials.
var AnonymousUser = &User{}

type UserModel struct {
	db *bun.DB
}

// List of Users
type Users []User

// User is the principal attached to every request. Password never leaves the
// server, the hash is stored through the custom Password type below.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            uuid.UUID `json:"id" bun:",pk,type:uuid"`
	Email         string    `json:"email" bun:",notnull,unique"`
	Password      Password  `json:"-" bun:"password_hash,type:bytea,notnull"`
	IsAdmin       bool      `json:"is_admin" bun:",notnull"`
	CreatedAt     time.Time `json:"created_at,omitempty" bun:",nullzero,notnull,default:current_timestamp"`
	Token         []*Token  `json:"-" bun:"rel:has-many,join:id=user_id"`
}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type Password struct {
	plaintext *string
	hash      []byte
}

func (p Password) Value() (driver.Value, error) {
	return p.hash, nil
}

func (p *Password) Scan(src interface{}) error {
	p.plaintext = nil
	switch v := src.(type) {
	case []byte:
		p.hash = append([]byte(nil), v...)
	case string:
		p.hash = []byte(v)
	default:
		return errors.New("unsupported password hash type")
	}
	return nil
}

func (p *Password) Set(passString string) error {
	// bcrypt ignores everything after the 72th byte, so longer passwords are rejected instead of silently truncated
	bcryptPass, err := bcrypt.GenerateFromPassword([]byte(passString), 12)
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			return ErrorPasswordTooLong
		default:
			return err
		}
	}
	p.plaintext = &passString
	p.hash = bcryptPass
	return nil
}

func (p *Password) Match() (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(*p.plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// Matches compares plaintext against the stored hash.
func (p Password) Matches(plaintext string) (bool, error) {
	p.plaintext = &plaintext
	return p.Match()
}

func (u *UserModel) Insert(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	_, err := u.db.NewInsert().Model(user).Exec(timeoutCtx)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrorDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (u *UserModel) GetByEmail(ctx context.Context, email string) (*User, error) {
	nUser := &User{}
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	err := u.db.NewSelect().Model(nUser).Where("u.email = ?", strings.ToLower(email)).Scan(timeoutCtx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrorRecordNotFound
		default:
			return nil, err
		}
	}
	return nUser, nil
}

func (u *UserModel) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	nUser := &User{}
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	err := u.db.NewSelect().Model(nUser).Where("u.id = ?", id).Scan(timeoutCtx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrorRecordNotFound
		default:
			return nil, err
		}
	}
	return nUser, nil
}

// SetAdmin grants or revokes the admin flag of the user with the given email.
func (u *UserModel) SetAdmin(ctx context.Context, email string, admin bool) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	result, err := u.db.NewUpdate().Model((*User)(nil)).Set("is_admin = ?", admin).Where("email = ?", strings.ToLower(email)).Exec(timeoutCtx)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrorRecordNotFound
	}
	return nil
}

func (u *UserModel) List(ctx context.Context, users *Users, email string, filters *Filters) (int, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()

	q := u.db.NewSelect().Model(users)
	if email != "" {
		// emails are stored lower-cased
		q = q.Where(`u.email LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(email)))
	}
	count, err := filters.orderBy(q, "u").
		Limit(filters.limit()).
		Offset(filters.offset()).
		ScanAndCount(timeoutCtx)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (u *UserModel) Delete(ctx context.Context, id uuid.UUID) error {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	return u.db.RunInTx(timeoutCtx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*Token)(nil)).Where("user_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		result, err := tx.NewDelete().Model((*User)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return ErrorRecordNotFound
		}
		return nil
	})
}

// GetUserByToken resolves a plaintext token of the given scope to its owner.
// Expired tokens are reported as ErrorRecordNotFound.
func (u *UserModel) GetUserByToken(ctx context.Context, tokenPlaintext string, tokenScope string) (*User, error) {
	timeoutCtx, cancelFunc := context.WithTimeout(ctx, queryTimeout)
	defer cancelFunc()
	hash := tokenHash(tokenPlaintext)

	nToken := &Token{}
	err := u.db.NewSelect().Model(nToken).Relation("User").Where("t.hash = ? AND t.scope = ?", hash, tokenScope).Scan(timeoutCtx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrorRecordNotFound
		default:
			return nil, err
		}
	}
	if nToken.User == nil || time.Now().After(nToken.Expiry) {
		return nil, ErrorRecordNotFound
	}
	return nToken.User, nil
}

func ValidateEmail(v *Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(Matches(email, EmailRX), "email", "must be a valid email address")
}

func ValidatePasswordPlaintext(v *Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 bytes long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 bytes long")
}
