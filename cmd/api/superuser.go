package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/cybrarymin/cinema/internal/data"
)

// CreateSuperuser creates an admin with the given credentials. When the email is
// already registered the existing user is promoted instead and created is false.
func CreateSuperuser(ctx context.Context, models *data.Models, email, password string) (created bool, err error) {
	v := data.NewValidator()
	data.ValidateEmail(v, email)
	data.ValidatePasswordPlaintext(v, password)
	if !v.Valid() {
		return false, fmt.Errorf("invalid superuser: %s", createKeyValuePairs(v.Errors))
	}

	user := &data.User{Email: email, IsAdmin: true}
	if err := user.Password.Set(password); err != nil {
		return false, err
	}
	err = models.Users.Insert(ctx, user)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, data.ErrorDuplicateEmail):
		return false, models.Users.SetAdmin(ctx, email, true)
	default:
		return false, err
	}
}
