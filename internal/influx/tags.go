package influx

import (
	"fmt"
	"strings"

	"github.com/kljama/jmx2influx/internal/model"
)

// TagHostname is attached to every point and carries the host of the
// server the results were collected from. It is always present,
// independent of the configured result tag selection.
const TagHostname = "hostname"

// ResultTag identifies one piece of result metadata that may be
// materialized as a point tag. The string value of a ResultTag is the
// tag key used on the wire.
type ResultTag string

const (
	TagAttributeName ResultTag = "attributeName"
	TagClassName     ResultTag = "className"
	TagObjDomain     ResultTag = "objDomain"
	TagTypeName      ResultTag = "typeName"
)

// AllResultTags returns the full tag selection, which is also the
// default when no selection is configured.
func AllResultTags() []ResultTag {
	return []ResultTag{TagAttributeName, TagClassName, TagObjDomain, TagTypeName}
}

// ParseResultTag maps a configured tag name to its ResultTag,
// case-insensitively. Unknown names are a configuration error.
func ParseResultTag(s string) (ResultTag, error) {
	for _, t := range AllResultTags() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown result tag %q", s)
}

// Value extracts the result field this tag is derived from.
func (t ResultTag) Value(r model.Result) string {
	switch t {
	case TagAttributeName:
		return r.AttributeName
	case TagClassName:
		return r.ClassName
	case TagObjDomain:
		return r.ObjDomain
	case TagTypeName:
		return r.TypeName
	}
	return ""
}

// Consistency is an InfluxDB write consistency level, governing how
// many replica acknowledgments the database requires before a write
// is reported successful.
type Consistency string

const (
	ConsistencyAny    Consistency = "any"
	ConsistencyOne    Consistency = "one"
	ConsistencyQuorum Consistency = "quorum"
	ConsistencyAll    Consistency = "all"
)

// Consistencies lists every supported consistency level.
func Consistencies() []Consistency {
	return []Consistency{ConsistencyAny, ConsistencyOne, ConsistencyQuorum, ConsistencyAll}
}

// ParseConsistency maps a configured consistency name to its level,
// case-insensitively. Unknown names are a configuration error.
func ParseConsistency(s string) (Consistency, error) {
	for _, c := range Consistencies() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown write consistency %q", s)
}
