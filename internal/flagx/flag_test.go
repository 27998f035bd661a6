package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	owned := []string{"-d", "-s"}
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate values", []string{"-d", "quotes.db", "-c", "conf.json", "-s", "48"}, []string{"-d", "quotes.db", "-s", "48"}},
		{"attached value", []string{"-s=48", "-c=conf.json"}, []string{"-s=48"}},
		{"double dash", []string{"--d", "q.db", "--s=12"}, []string{"--d", "q.db", "--s=12"}},
		{"foreign flags and positionals dropped", []string{"-x", "1", "--y=2", "positional"}, []string{}},
		{"flag at the end", []string{"-d"}, []string{"-d"}},
		{"next dash token is not a value", []string{"-d", "-s", "6"}, []string{"-d", "-s", "6"}},
		{"attached value may start with dash", []string{"-d=-odd.db"}, []string{"-d=-odd.db"}},
		{"repeated flag keeps order", []string{"-d", "a.db", "-d", "b.db"}, []string{"-d", "a.db", "-d", "b.db"}},
		{"prefix of an owned name is not owned", []string{"-debug", "x"}, []string{}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, owned))
		})
	}
}

func TestConfigPath(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/path/short.json"}, "/path/short.json"},
		{"long with equals", []string{"-config=/path/long.json"}, "/path/long.json"},
		{"double dash", []string{"--config", "/path/dd.json"}, "/path/dd.json"},
		{"among other flags", []string{"-d", "quotes.db", "-c", "x.json", "-v", "debug"}, "x.json"},
		{"last wins", []string{"-c", "/path/1.json", "-config", "/path/2.json"}, "/path/2.json"},
		{"absent", []string{"-d", "quotes.db"}, ""},
		{"no value", []string{"-c"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConfigPath(tc.args))
		})
	}
}
