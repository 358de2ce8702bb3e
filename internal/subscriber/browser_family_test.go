package subscriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserFamily(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			name: "chrome wins over trailing safari token",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			want: "chrome",
		},
		{
			name: "firefox",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
			want: "firefox",
		},
		{
			name: "safari",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
			want: "safari",
		},
		{
			name: "old internet explorer",
			ua:   "Mozilla/5.0 (compatible; MSIE 10.0; Windows NT 6.1; Trident/6.0)",
			want: "msie",
		},
		{
			name: "trident only",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Trident/7.0; rv:11.0) like Gecko",
			want: "trident",
		},
		{name: "nothing recognisable", ua: "curl/8.5.0", want: "unknown"},
		{name: "empty", ua: "", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BrowserFamily(tt.ua))
		})
	}
}
