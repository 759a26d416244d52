package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectPostLookupArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{
			[]string{"blogtty", "post-abc123"},
			[]string{"blogtty", "posts", "show", "post-abc123"},
		},
		{
			[]string{"blogtty", "--server", "http://x", "post-abc123"},
			[]string{"blogtty", "--server", "http://x", "posts", "show", "post-abc123"},
		},
		{
			[]string{"blogtty", "--pretty", "post-abc123"},
			[]string{"blogtty", "--pretty", "posts", "show", "post-abc123"},
		},
		// Not a post id: left alone.
		{
			[]string{"blogtty", "posts", "list"},
			[]string{"blogtty", "posts", "list"},
		},
		// Bare "post-" is not an id.
		{
			[]string{"blogtty", "post-"},
			[]string{"blogtty", "post-"},
		},
		{
			[]string{"blogtty"},
			[]string{"blogtty"},
		},
		// --query consumes its value, so a pasted query never matches.
		{
			[]string{"blogtty", "--query", "post-abc"},
			[]string{"blogtty", "--query", "post-abc"},
		},
	}
	for _, tc := range cases {
		got := rewriteDirectPostLookupArgs(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("rewrite(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
