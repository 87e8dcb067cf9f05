package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", "http://localhost"},
			names: []string{"c", "config"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with equals",
			args:  []string{"--config=alt.yaml", "-a", "x"},
			names: []string{"c", "config"},
			want:  []string{"--config=alt.yaml"},
		},
		{
			name:  "order preserved across forms",
			args:  []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			names: []string{"c", "config"},
			want:  []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:  "unknown flags and positionals dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "flag without value at end",
			args:  []string{"-p"},
			names: []string{"p"},
			want:  []string{"-p"},
		},
		{
			name:  "flag followed by another flag",
			args:  []string{"-d", "-l", "debug"},
			names: []string{"d", "l"},
			want:  []string{"-d", "-l", "debug"},
		},
		{
			name:  "bare dashes ignored",
			args:  []string{"--", "-", "-a", "u"},
			names: []string{"a"},
			want:  []string{"-a", "u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", "http://x", "-c", "a.json"}))
	assert.Equal(t, "b.yaml", ConfigPath([]string{"--config=b.yaml"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", "http://x"}))
}
