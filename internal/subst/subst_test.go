package subst

import "testing"

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		pins map[string]string
		in   string
		want string
	}{
		{
			name: "quoted token",
			pins: map[string]string{"SSL": "1.0.2o"},
			in:   "SSL_VER=\"1.0.2n\"\n",
			want: "SSL_VER=\"1.0.2o\"\n",
		},
		{
			name: "bare token",
			pins: map[string]string{"CURL": "7.61.0"},
			in:   "ARG CURL_VER=7.59.0\n",
			want: "ARG CURL_VER=\"7.61.0\"\n",
		},
		{
			name: "no matching prefix passes through",
			pins: map[string]string{"SSL": "1.0.2o"},
			in:   "FOO=bar\n",
			want: "FOO=bar\n",
		},
		{
			name: "two prefixes on one line",
			pins: map[string]string{"CURL": "9", "SSL": "8"},
			in:   "CURL_VER=1 SSL_VER=2",
			want: "CURL_VER=\"9\" SSL_VER=\"8\"",
		},
		{
			name: "repeated prefix replaced globally",
			pins: map[string]string{"ZLIB": "1.2.11"},
			in:   "ZLIB_VER=a something ZLIB_VER=b\n",
			want: "ZLIB_VER=\"1.2.11\" something ZLIB_VER=\"1.2.11\"\n",
		},
		{
			name: "crlf terminator preserved",
			pins: map[string]string{"SSL": "1.0.2o"},
			in:   "SSL_VER=1.0.2n\r\n",
			want: "SSL_VER=\"1.0.2o\"\r\n",
		},
		{
			name: "surrounding text untouched",
			pins: map[string]string{"SQLITE": "3240000"},
			in:   "RUN curl -O https://sqlite.org/$SQLITE_YEAR/sqlite-$SQLITE_VER.tar.gz SQLITE_VER=3230000 # pin\n",
			want: "RUN curl -O https://sqlite.org/$SQLITE_YEAR/sqlite-$SQLITE_VER.tar.gz SQLITE_VER=\"3240000\" # pin\n",
		},
		{
			name: "empty pin map",
			pins: map[string]string{},
			in:   "SSL_VER=1.0.2n\n",
			want: "SSL_VER=1.0.2n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := NewRewriter(tt.pins)
			if got := rw.Line(tt.in); got != tt.want {
				t.Errorf("Line(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLinePrefixIsCaseSensitive(t *testing.T) {
	rw := NewRewriter(map[string]string{"SSL": "1.0.2o"})
	in := "ssl_ver=1.0.2n\n"
	if got := rw.Line(in); got != in {
		t.Errorf("Line(%q) = %q, want input unchanged", in, got)
	}
}
