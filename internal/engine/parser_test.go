// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"yamlcore.dev/core/internal/testutil/assert"
)

func parseAll(t *testing.T, doc string) []Event {
	t.Helper()
	s := NewScanner(NewSliceReader([]byte(doc)))
	p := NewParser(s)
	var evs []Event
	for {
		ev, err := p.Next()
		assert.NoError(t, err)
		evs = append(evs, ev)
		if ev.Kind == StreamEndEvent {
			break
		}
	}
	return evs
}

func eventKinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func TestParseScalarDocument(t *testing.T) {
	evs := parseAll(t, "hello\n")
	assert.DeepEqual(t, []EventKind{
		StreamStartEvent, DocumentStartEvent, ScalarEvent, DocumentEndEvent, StreamEndEvent,
	}, eventKinds(evs))
	assert.Equal(t, "hello", evs[2].Value)
	assert.True(t, evs[1].Implicit)
}

func TestParseExplicitDocumentMarkers(t *testing.T) {
	evs := parseAll(t, "---\nhello\n...\n")
	assert.False(t, evs[1].Implicit)
	docEnd := evs[len(evs)-2]
	assert.Equal(t, DocumentEndEvent, docEnd.Kind)
	assert.False(t, docEnd.Implicit)
}

func TestParseMultiDocumentStream(t *testing.T) {
	evs := parseAll(t, "---\na: 1\n---\nb: 2\n")
	count := 0
	for _, e := range evs {
		if e.Kind == DocumentStartEvent {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestParseNestedBlockCollections(t *testing.T) {
	evs := parseAll(t, "items:\n  - a\n  - b\n")
	assert.DeepEqual(t, []EventKind{
		StreamStartEvent, DocumentStartEvent,
		MappingStartEvent, ScalarEvent, SequenceStartEvent, ScalarEvent, ScalarEvent, SequenceEndEvent, MappingEndEvent,
		DocumentEndEvent, StreamEndEvent,
	}, eventKinds(evs))
}

func TestParseTagDirectiveExpandsHandle(t *testing.T) {
	evs := parseAll(t, "%TAG !e! tag:example.com,2000:\n--- !e!foo bar\n")
	var scalar Event
	for _, e := range evs {
		if e.Kind == ScalarEvent {
			scalar = e
		}
	}
	assert.Equal(t, "tag:example.com,2000:foo", scalar.Tag)
}

func TestParseUndefinedTagHandleFails(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	parseAll(t, "--- !q!foo bar\n")
}

func TestParseEmptyFlowMappingValue(t *testing.T) {
	evs := parseAll(t, "{a: }\n")
	// MappingStart, key "a", empty value scalar, MappingEnd
	assert.Equal(t, MappingStartEvent, evs[2].Kind)
	assert.Equal(t, "a", evs[3].Value)
	assert.Equal(t, ScalarEvent, evs[4].Kind)
	assert.Equal(t, "", evs[4].Value)
}

func TestParseLoneKeyInFlowSequenceOpensImplicitMapping(t *testing.T) {
	evs := parseAll(t, "[a: b]\n")
	assert.DeepEqual(t, []EventKind{
		StreamStartEvent, DocumentStartEvent,
		SequenceStartEvent, MappingStartEvent, ScalarEvent, ScalarEvent, MappingEndEvent, SequenceEndEvent,
		DocumentEndEvent, StreamEndEvent,
	}, eventKinds(evs))
	assert.True(t, evs[3].Implicit)
	assert.Equal(t, "a", evs[4].Value)
	assert.Equal(t, "b", evs[5].Value)
}

func TestParseMultipleLoneKeysInFlowSequence(t *testing.T) {
	evs := parseAll(t, "[a: b, c: d]\n")
	count := 0
	for _, e := range evs {
		if e.Kind == MappingStartEvent {
			count++
		}
	}
	assert.Equal(t, 2, count)
}
