package influx

import "fmt"

// Settings is the immutable configuration of a Writer. The zero value
// of every optional field selects the documented default.
type Settings struct {
	// Database receives every batch this writer submits.
	Database string
	// Consistency applies to every batch. Empty means ConsistencyAll.
	Consistency Consistency
	// ResultTags selects which result metadata becomes point tags.
	// nil means all of them; an empty non-nil slice means none.
	ResultTags []ResultTag
	// RetentionPolicy is stamped on each batch when set.
	RetentionPolicy string
	// CreateDatabase issues a CREATE DATABASE statement before the
	// first write.
	CreateDatabase bool
	// StaticTags are added to every point in addition to the selected
	// result tags and the hostname tag.
	StaticTags map[string]string
	// BoolsAsNumbers converts boolean result values to 0/1 integer
	// fields instead of line protocol booleans.
	BoolsAsNumbers bool
	// Precision is the batch timestamp precision. Empty means "ms",
	// matching the millisecond result timestamps.
	Precision string
}

// Setting map keys recognized by ParseSettings.
const (
	SettingWriteConsistency = "writeConsistency"
	SettingResultTags       = "resultTags"
	SettingRetentionPolicy  = "retentionPolicy"
	SettingCreateDatabase   = "createDatabase"
	SettingTags             = "tags"
	SettingBoolsAsNumbers   = "booleanAsNumber"
	SettingPrecision        = "precision"
)

func (s Settings) withDefaults() Settings {
	if s.Consistency == "" {
		s.Consistency = ConsistencyAll
	}
	if s.ResultTags == nil {
		s.ResultTags = AllResultTags()
	}
	if s.Precision == "" {
		s.Precision = "ms"
	}
	return s
}

// ParseSettings binds a loose settings map, as found in a writer block
// of a queries file, into typed Settings. Every unknown enum value or
// mistyped entry is rejected here, at configuration time, so that
// Write never has to. Unrecognized keys are ignored.
func ParseSettings(database string, raw map[string]any) (Settings, error) {
	s := Settings{Database: database}
	for key, val := range raw {
		var err error
		switch key {
		case SettingWriteConsistency:
			err = bindString(key, val, func(v string) error {
				c, err := ParseConsistency(v)
				if err != nil {
					return err
				}
				s.Consistency = c
				return nil
			})
		case SettingResultTags:
			s.ResultTags, err = bindResultTags(val)
		case SettingRetentionPolicy:
			err = bindString(key, val, func(v string) error {
				s.RetentionPolicy = v
				return nil
			})
		case SettingCreateDatabase:
			err = bindBool(key, val, &s.CreateDatabase)
		case SettingTags:
			s.StaticTags, err = bindStringMap(key, val)
		case SettingBoolsAsNumbers:
			err = bindBool(key, val, &s.BoolsAsNumbers)
		case SettingPrecision:
			err = bindString(key, val, func(v string) error {
				s.Precision = v
				return nil
			})
		}
		if err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

func bindString(key string, val any, set func(string) error) error {
	v, ok := val.(string)
	if !ok {
		return fmt.Errorf("setting %s: expected string, got %T", key, val)
	}
	return set(v)
}

func bindBool(key string, val any, dst *bool) error {
	v, ok := val.(bool)
	if !ok {
		return fmt.Errorf("setting %s: expected bool, got %T", key, val)
	}
	*dst = v
	return nil
}

func bindStringMap(key string, val any) (map[string]string, error) {
	raw, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("setting %s: expected map, got %T", key, val)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("setting %s: tag %s: expected string, got %T", key, k, v)
		}
		out[k] = s
	}
	return out, nil
}

func bindResultTags(val any) ([]ResultTag, error) {
	var names []string
	switch v := val.(type) {
	case []string:
		names = v
	case []any:
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("setting %s: expected string entries, got %T", SettingResultTags, e)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("setting %s: expected list, got %T", SettingResultTags, val)
	}
	tags := make([]ResultTag, 0, len(names))
	for _, name := range names {
		t, err := ParseResultTag(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
