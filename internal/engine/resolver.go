// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Resolver and Constructor are the two collaborators a Composer consults.
// Concrete scalar construction (turning a !!int's text into an actual Go
// int, timestamp parsing, base64 decoding of !!binary, ...) is out of
// scope for this core; DefaultResolver/DefaultConstructor exist only so
// the pipeline is directly usable and testable without every caller
// having to supply its own, per the core's own data model in which a Node
// carries a resolved tag string and raw text, nothing more.

package engine

import "regexp"

const (
	NullTag      = "tag:yaml.org,2002:null"
	BoolTag      = "tag:yaml.org,2002:bool"
	StrTag       = "tag:yaml.org,2002:str"
	IntTag       = "tag:yaml.org,2002:int"
	FloatTag     = "tag:yaml.org,2002:float"
	TimestampTag = "tag:yaml.org,2002:timestamp"
	SeqTag       = "tag:yaml.org,2002:seq"
	MapTag       = "tag:yaml.org,2002:map"
	BinaryTag    = "tag:yaml.org,2002:binary"
	MergeTag     = "tag:yaml.org,2002:merge"

	DefaultScalarTag   = StrTag
	DefaultSequenceTag = SeqTag
	DefaultMappingTag  = MapTag
)

// Resolver maps a node's kind, explicit tag (if any) and raw scalar value
// to the tag that should be recorded on the composed Node.
type Resolver interface {
	Resolve(kind NodeKind, explicitTag, value string, implicit bool) (tag string)
}

var (
	nullRe    = regexp.MustCompile(`^(?:~|null|Null|NULL|)$`)
	boolRe    = regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE|yes|Yes|YES|no|No|NO|on|On|ON|off|Off|OFF)$`)
	intRe     = regexp.MustCompile(`^[-+]?(?:0b[0-1_]+|0x[0-9a-fA-F_]+|0o?[0-7_]+|[0-9][0-9_]*(?::[0-5]?[0-9])+|0|[1-9][0-9_]*)$`)
	floatRe   = regexp.MustCompile(`^[-+]?(?:\.inf|\.Inf|\.INF)$|^\.nan$|^\.NaN$|^\.NAN$|^[-+]?(?:[0-9][0-9_]*)?\.[0-9_]*(?:[eE][-+]?[0-9]+)?$|^[-+]?[0-9][0-9_]*[eE][-+]?[0-9]+$`)
	timestamp = regexp.MustCompile(`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:[Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?(?:[ \t]*(?:Z|[-+][0-9]{1,2}(?::[0-9]{2})?))?$|^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// DefaultResolver implements the classic YAML 1.1 implicit scalar
// resolution rules used throughout the go-yaml lineage: an ordered set of
// regular expressions tried only when the node carries no explicit tag.
type DefaultResolver struct{}

func (DefaultResolver) Resolve(kind NodeKind, explicitTag, value string, implicit bool) string {
	switch kind {
	case SequenceNode:
		if explicitTag != "" {
			return explicitTag
		}
		return DefaultSequenceTag
	case MappingNode:
		if explicitTag != "" {
			return explicitTag
		}
		return DefaultMappingTag
	case AliasNode:
		return explicitTag
	}
	if explicitTag != "" {
		return explicitTag
	}
	if !implicit {
		return StrTag
	}
	switch {
	case nullRe.MatchString(value):
		return NullTag
	case boolRe.MatchString(value):
		return BoolTag
	case intRe.MatchString(value):
		return IntTag
	case floatRe.MatchString(value):
		return FloatTag
	case timestamp.MatchString(value):
		return TimestampTag
	case value == "<<":
		return MergeTag
	}
	return StrTag
}
