package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"  padded  ", "padded"},
		{"<b>bold</b>", "bold"},
		{"<script>alert(1)</script>hi", "hi"},
		{"a <i>b</i> c", "a b c"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<img src=x onerror=alert(1)>", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Text(tc.in), "input %q", tc.in)
	}
}
