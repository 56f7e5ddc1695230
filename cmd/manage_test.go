package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperuserPasswordFrom(t *testing.T) {
	tests := []struct {
		name        string
		flagValue   string
		fromStdin   bool
		stdin       string
		env         string
		expected    string
		expectedErr bool
	}{
		{name: "Stdin first line", fromStdin: true, stdin: "pa55word1234\nignored\n", expected: "pa55word1234"},
		{name: "Stdin without newline", fromStdin: true, stdin: "pa55word1234", expected: "pa55word1234"},
		{name: "Stdin with CRLF", fromStdin: true, stdin: "pa55word1234\r\n", expected: "pa55word1234"},
		{name: "Empty stdin", fromStdin: true, stdin: "", expectedErr: true},
		{name: "Flag value", flagValue: "from-flag-1234", env: "from-env-1234", expected: "from-flag-1234"},
		{name: "Environment fallback", env: "from-env-1234", expected: "from-env-1234"},
		{name: "Nothing given", expectedErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(superuserPasswordEnv, tc.env)
			password, err := superuserPasswordFrom(tc.flagValue, tc.fromStdin, strings.NewReader(tc.stdin))
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, password)
		})
	}
}
