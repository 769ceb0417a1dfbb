// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Examples(t *testing.T) {
	table := NewTable(DefaultRules())

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "/about-mina/overview", want: "/about-mina", wantOK: true},
		{path: "/tutorials", want: "/zkapps/tutorials/hello-world", wantOK: true},
		{path: "/zkapps/tutorials", want: "/zkapps/tutorials/hello-world", wantOK: true},
		{path: "/exchange-operators/exchange-faq", want: "/exchange-operators/faq", wantOK: true},
		{path: "/not-a-real-path", wantOK: false},
		// Exact match only: normalization is the caller's job.
		{path: "/tutorials/", wantOK: false},
		{path: "/Tutorials", wantOK: false},
		{path: "tutorials", wantOK: false},
		{path: "/tutorials/anything", wantOK: false},
		{path: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := table.Lookup(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_EveryDeclaredRule(t *testing.T) {
	rules := DefaultRules()
	table := NewTable(rules)

	for _, r := range rules {
		got, ok := table.Lookup(r.From)
		require.True(t, ok, "missing %s", r.From)
		assert.Equal(t, r.To, got, "lookup(%s)", r.From)
	}
}

func TestLookup_NilTable(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("/tutorials")
	assert.False(t, ok)
	assert.Zero(t, table.Len())
	assert.Nil(t, table.Rules())
}

func TestNewTable_FirstDeclaredWins(t *testing.T) {
	table := NewTable([]Rule{
		{From: "/a", To: "/first"},
		{From: "/b", To: "/other"},
		{From: "/a", To: "/second"},
	})

	got, ok := table.Lookup("/a")
	require.True(t, ok)
	assert.Equal(t, "/first", got)
	assert.Equal(t, 2, table.Len())

	want := []Rule{{From: "/a", To: "/first"}, {From: "/b", To: "/other"}}
	if diff := cmp.Diff(want, table.Rules()); diff != "" {
		t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTable_Deterministic(t *testing.T) {
	first := NewTable(DefaultRules())
	second := NewTable(DefaultRules())

	if diff := cmp.Diff(first.Rules(), second.Rules()); diff != "" {
		t.Errorf("table construction is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.byFrom, second.byFrom); diff != "" {
		t.Errorf("lookup maps differ (-first +second):\n%s", diff)
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	table := NewTable([]Rule{{From: "/a", To: "/b"}})

	rules := table.Rules()
	rules[0].To = "/mutated"

	got, _ := table.Lookup("/a")
	assert.Equal(t, "/b", got)
	assert.Equal(t, "/b", table.Rules()[0].To)
}

func TestLookup_Concurrent(t *testing.T) {
	rules := DefaultRules()
	table := NewTable(rules)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range rules {
				if got, ok := table.Lookup(r.From); !ok || got != r.To {
					t.Errorf("lookup(%s) = %q, %v", r.From, got, ok)
				}
			}
		}()
	}
	wg.Wait()
}
