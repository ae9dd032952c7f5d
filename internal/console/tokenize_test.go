package console

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hbnb-network/hbnb/internal/domain"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"User 1234", []string{"User", "1234"}},
		{"  User\t1234  ", []string{"User", "1234"}},
		{`User 12 name "Betty Holberton"`, []string{"User", "12", "name", "Betty Holberton"}},
		{`User 12 name 'it"s'`, []string{"User", "12", "name", `it"s`}},
		{`a"b c"d`, []string{"ab cd"}},
		{`""`, []string{""}},
		{`'' x`, []string{"", "x"}},
		{`a\ b`, []string{"a b"}},
		{`"a\"b"`, []string{`a"b`}},
		{`"a\nb"`, []string{`a\nb`}},
		{`'a\nb'`, []string{`a\nb`}},
		{`"a\\b"`, []string{`a\b`}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Split(tt.input)
			if err != nil {
				t.Fatalf("Split(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplit_MalformedQuoting(t *testing.T) {
	for _, input := range []string{`"abc`, `User 'x`, `trailing\`, `a "b\"`} {
		if _, err := Split(input); !errors.Is(err, domain.ErrMalformedQuoting) {
			t.Errorf("Split(%q) error = %v, want ErrMalformedQuoting", input, err)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "''"},
		{"abc", "abc"},
		{"a.b/c-d_e:f@g%h+i=j,k", "a.b/c-d_e:f@g%h+i=j,k"},
		{"two words", "'two words'"},
		{"it's", `'it'"'"'s'`},
		{`{"a": 1}`, `'{"a": 1}'`},
	}
	for _, tt := range tests {
		if got := Quote(tt.input); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestQuote_RoundTrip(t *testing.T) {
	inputs := []string{"", "plain", "with space", "it's", `"dq"`, `back\slash`, "tab\there", "ünïcode word"}
	for _, s := range inputs {
		got, err := Split(Quote(s))
		if err != nil {
			t.Fatalf("Split(Quote(%q)) error: %v", s, err)
		}
		if len(got) != 1 || got[0] != s {
			t.Errorf("Split(Quote(%q)) = %q", s, got)
		}
	}
}
