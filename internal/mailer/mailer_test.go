package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data := struct {
		ID    string
		Email string
	}{
		ID:    "6f1c2f0e-3c8b-4d59-9a4e-5a0b7f3e9c11",
		Email: "user@example.com",
	}
	subject, plainBody, htmlBody, err := Render("user_welcome.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the cinema catalog!", subject)
	assert.Contains(t, plainBody, data.ID)
	assert.Contains(t, plainBody, data.Email)
	assert.Contains(t, htmlBody, "<code>POST /v1/tokens/authentication</code>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing.tmpl", nil)
	assert.Error(t, err)
}
