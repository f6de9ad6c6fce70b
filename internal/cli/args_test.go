package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionalNegatives(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{
			name: "no negative number",
			args: "absence add 2024-01-15 8 vacation",
			want: "absence add 2024-01-15 8 vacation",
		},
		{
			name: "negative hours",
			args: "absence add 2024-01-15 -1 vacation --note x",
			want: "absence add --note x -- 2024-01-15 -1 vacation",
		},
		{
			name: "global flags first",
			args: "--data-dir /d -v --format json config set workhours_per_week -1",
			want: "config set --data-dir /d -v --format json -- workhours_per_week -1",
		},
		{
			name: "fraction",
			args: "config set daily_worktime_good -.5",
			want: "config set -- daily_worktime_good -.5",
		},
		{
			name: "negative flag value",
			args: "absence add 2024-01-15 3 vacation --note -2",
			want: "absence add --note -2 -- 2024-01-15 3 vacation",
		},
		{
			name: "flag with inline value",
			args: "absence add --note=hi 2024-01-15 -3 sick",
			want: "absence add --note=hi -- 2024-01-15 -3 sick",
		},
		{
			name: "explicit separator",
			args: "config set -- workhours_per_week -1",
			want: "config set -- workhours_per_week -1",
		},
		{
			name: "dash word is not a number",
			args: "absence add 2024-01-15 -x vacation",
			want: "absence add 2024-01-15 -x vacation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRootCommandWithEnv(&Env{})
			got := positionalNegatives(root, strings.Fields(tt.args))
			assert.Equal(t, strings.Fields(tt.want), got)
		})
	}
}

func TestIsNegativeNumber(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"-1", true},
		{"-2.5", true},
		{"-.5", true},
		{"-0", true},
		{"1", false},
		{"-", false},
		{"-v", false},
		{"--1", false},
		{"-1x", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, isNegativeNumber(tt.arg))
		})
	}
}
