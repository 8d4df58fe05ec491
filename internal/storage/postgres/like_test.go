package postgres

// Юнит-тест шаблона подстрочного поиска (без БД).

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "story", want: "%story%"},
		{name: "percent", in: "100%", want: `%100\%%`},
		{name: "underscore", in: "a_b", want: `%a\_b%`},
		{name: "backslash", in: `c:\tmp`, want: `%c:\\tmp%`},
		{name: "only_percent", in: "%", want: `%\%%`},
		{name: "empty", in: "", want: "%%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, likePattern(tc.in))
		})
	}
}
