// Copyright 2025 The fy Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, src string, opts ...ParseOption) []*Event {
	t.Helper()
	cfg := NewParseConfig(opts...)
	in := NewInputString("<test>", src)
	sc := NewScanner(in, &cfg)
	p := NewParser(sc, &cfg)
	var events []*Event
	for {
		ev, err := p.Parse()
		require.NoError(t, err)
		if ev == nil {
			break
		}
		events = append(events, ev)
		if ev.Type == StreamEndEvent {
			break
		}
	}
	return events
}

func eventTypes(evs []*Event) []EventType {
	types := make([]EventType, len(evs))
	for i, e := range evs {
		types[i] = e.Type
	}
	return types
}

func TestParserSimpleSequenceEventStream(t *testing.T) {
	evs := parseAll(t, "[1, 2, 3]\n")
	assert.Equal(t, []EventType{
		StreamStartEvent, DocumentStartEvent, SequenceStartEvent,
		ScalarEvent, ScalarEvent, ScalarEvent, SequenceEndEvent,
		DocumentEndEvent, StreamEndEvent,
	}, eventTypes(evs))
}

func TestParserBlockMappingEventStream(t *testing.T) {
	evs := parseAll(t, "a: 1\nb: 2\n")
	types := eventTypes(evs)
	assert.Equal(t, StreamStartEvent, types[0])
	assert.Equal(t, DocumentStartEvent, types[1])
	assert.Equal(t, MappingStartEvent, types[2])
	assert.Equal(t, StreamEndEvent, types[len(types)-1])

	var scalars []string
	for _, e := range evs {
		if e.Type == ScalarEvent {
			scalars = append(scalars, string(e.Value))
		}
	}
	assert.Equal(t, []string{"a", "1", "b", "2"}, scalars)
}

func TestParserAnchorAndAliasEvents(t *testing.T) {
	evs := parseAll(t, "[&x 1, *x]\n")
	var sawAnchor, sawAlias bool
	for _, e := range evs {
		if e.Type == ScalarEvent && string(e.Anchor) == "x" {
			sawAnchor = true
		}
		if e.Type == AliasEvent && string(e.Anchor) == "x" {
			sawAlias = true
		}
	}
	assert.True(t, sawAnchor)
	assert.True(t, sawAlias)
}

func TestParserVersionDirectivePropagatesToDocumentStart(t *testing.T) {
	evs := parseAll(t, "%YAML 1.1\n---\na: 1\n")
	var started bool
	for _, e := range evs {
		if e.Type == DocumentStartEvent {
			require.NotNil(t, e.VersionDirective)
			assert.EqualValues(t, 1, e.VersionDirective.Major)
			assert.EqualValues(t, 1, e.VersionDirective.Minor)
			started = true
		}
	}
	assert.True(t, started)
}

func TestParserSingleDocumentModeAcceptsBareStream(t *testing.T) {
	evs := parseAll(t, "a: 1\n", WithSingleDocument(true))
	assert.Equal(t, StreamEndEvent, evs[len(evs)-1].Type)
}

func TestParserSingleDocumentModeRejectsSecondDocument(t *testing.T) {
	cfg := NewParseConfig(WithSingleDocument(true))
	in := NewInputString("<test>", "a: 1\n---\nb: 2\n")
	sc := NewScanner(in, &cfg)
	p := NewParser(sc, &cfg)
	var err error
	for {
		var ev *Event
		ev, err = p.Parse()
		if err != nil || ev == nil {
			break
		}
	}
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParserJSONModeRejectsAlias(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	in := NewInputString("<test>", "[&x 1, *x]\n")
	sc := NewScanner(in, &cfg)
	p := NewParser(sc, &cfg)
	var err error
	for {
		var ev *Event
		ev, err = p.Parse()
		if err != nil || ev == nil {
			break
		}
	}
	require.Error(t, err)
}

func TestParserMultiDocumentStream(t *testing.T) {
	evs := parseAll(t, "---\na: 1\n---\nb: 2\n...\n")
	count := 0
	for _, e := range evs {
		if e.Type == DocumentStartEvent {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestParserFlowMappingEventStream(t *testing.T) {
	evs := parseAll(t, "{a: 1, b: 2}\n")
	types := eventTypes(evs)
	assert.Contains(t, types, MappingStartEvent)
	assert.Contains(t, types, MappingEndEvent)
}

func TestParserMissingBlockEntryIndicatorErrors(t *testing.T) {
	cfg := DefaultParseConfig()
	in := NewInputString("<test>", "[1, 2\n")
	sc := NewScanner(in, &cfg)
	p := NewParser(sc, &cfg)
	var err error
	for {
		var ev *Event
		ev, err = p.Parse()
		if err != nil || ev == nil {
			break
		}
	}
	require.Error(t, err)
}

func parseAllErr(cfg *ParseConfig, src string) error {
	in := NewInputString("<test>", src)
	sc := NewScanner(in, cfg)
	p := NewParser(sc, cfg)
	for {
		ev, err := p.Parse()
		if err != nil {
			return err
		}
		if ev == nil || ev.Type == StreamEndEvent {
			return nil
		}
	}
}

func TestParserJSONModeRejectsTrailingCommaInMapping(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := parseAllErr(&cfg, `{"a":1,}`)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParserJSONModeRejectsTrailingCommaInSequence(t *testing.T) {
	cfg := NewParseConfig(WithJSONMode(true))
	err := parseAllErr(&cfg, `[1,2,]`)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParserAcceptsTrailingCommaOutsideJSONMode(t *testing.T) {
	evs := parseAll(t, "{a: 1,}\n")
	types := eventTypes(evs)
	assert.Contains(t, types, MappingEndEvent)
}

func TestParserRejectsUnsupportedYAMLVersionMajor(t *testing.T) {
	cfg := DefaultParseConfig()
	err := parseAllErr(&cfg, "%YAML 3.0\n---\na: 1\n")
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParserAcceptsYAML1xVersions(t *testing.T) {
	evs := parseAll(t, "%YAML 1.2\n---\na: 1\n")
	found := false
	for _, e := range evs {
		if e.Type == DocumentStartEvent {
			require.NotNil(t, e.VersionDirective)
			assert.EqualValues(t, 1, e.VersionDirective.Major)
			assert.EqualValues(t, 2, e.VersionDirective.Minor)
			found = true
		}
	}
	assert.True(t, found)
}
