// Package model holds the read-only data model produced by the JMX
// collection layer: which server was polled, what was queried on it,
// and the attribute samples that came back.
package model

// Server describes the monitored JMX endpoint a batch of results came
// from. Host feeds the hostname tag on every emitted point.
type Server struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Alias string `json:"alias,omitempty"`
}

// Query describes what was requested on a server: an object name
// pattern and the attributes read from matching beans.
type Query struct {
	Obj  string   `json:"obj"`
	Attr []string `json:"attr,omitempty"`
}

// Result is one captured attribute sample. KeyAlias names the series
// the sample belongs to; Values maps field names to the sampled
// values. Timestamp is epoch milliseconds.
type Result struct {
	Timestamp     int64          `json:"timestamp"`
	AttributeName string         `json:"attributeName"`
	ClassName     string         `json:"className"`
	ObjDomain     string         `json:"objDomain"`
	KeyAlias      string         `json:"keyAlias"`
	TypeName      string         `json:"typeName"`
	Values        map[string]any `json:"values"`
}
