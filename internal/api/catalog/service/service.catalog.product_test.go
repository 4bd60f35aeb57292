package catalogsvc

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeRegex(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"loa jbl", "loa jbl"},
		{"sony 5.1", `sony 5\.1`},
		{"mic (pro)", `mic \(pro\)`},
		{`a+b*c?`, `a\+b\*c\?`},
		{"loa $99 [sale]", `loa \$99 \[sale\]`},
	}
	for _, c := range cases {
		got := escapeRegex(c.input)
		assert.Equal(t, c.expected, got, "input = %q", c.input)

		// Chuỗi sau escape phải là regex hợp lệ và match chính input gốc
		re, err := regexp.Compile(got)
		assert.NoError(t, err)
		assert.True(t, re.MatchString(c.input), "regex %q phải match lại %q", got, c.input)
	}
}
