package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-dev"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps own flags with values",
			args:    []string{"-a", ":10000", "-c", "petswap.yaml", "-d", "postgres://db"},
			allowed: serverFlags,
			want:    []string{"-a", ":10000", "-d", "postgres://db"},
		},
		{
			name:    "equals form kept whole",
			args:    []string{"-d=postgres://u:p@h/db?sslmode=disable", "-x=1"},
			allowed: serverFlags,
			want:    []string{"-d=postgres://u:p@h/db?sslmode=disable"},
		},
		{
			name:    "boolean flag does not swallow the next flag",
			args:    []string{"-dev", "-a", ":8080"},
			allowed: serverFlags,
			want:    []string{"-dev", "-a", ":8080"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-a"},
			allowed: serverFlags,
			want:    []string{"-a"},
		},
		{
			name:    "config flags only",
			args:    []string{"-a", ":1", "-config=petswap.json", "-c", "other.yaml"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=petswap.json", "-c", "other.yaml"},
		},
		{
			name:    "nothing allowed matches",
			args:    []string{"positional", "-x", "1"},
			allowed: serverFlags,
			want:    []string{},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "short", args: []string{"-c", "/etc/petswap.yaml"}, want: "/etc/petswap.yaml"},
		{name: "long with equals", args: []string{"-config=petswap.json", "-a", ":1"}, want: "petswap.json"},
		{name: "last wins", args: []string{"-c", "1.json", "-config", "2.json"}, want: "2.json"},
		{name: "absent", args: []string{"-a", ":1", "-dev"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configFileFlag(tt.args))
		})
	}
}

func TestConfigFileFlag_ReadsOSArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"petswap-server", "-l", "debug", "-c", "petswap.yaml"}
	assert.Equal(t, "petswap.yaml", ConfigFileFlag())
}
