// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"carvel.dev/yamlemit/pkg/orderedmap"
	"github.com/BurntSushi/toml"
)

// NewTOMLSource returns the events of a TOML document. Keys keep the order
// they are defined in; dates and times become strings.
func NewTOMLSource(data []byte) (Source, error) {
	var doc map[string]interface{}

	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling TOML: %w", err)
	}

	ordered := orderedmap.Conversion{Object: doc, Rank: keyRanks(md.Keys())}.FromUnorderedMaps()

	events := []Event{{Kind: DocumentStart}}
	events = appendTOMLValue(events, ordered)
	return NewSliceSource(events...), nil
}

// keyRanks ranks keys by where they are first defined.
func keyRanks(keys []toml.Key) func(path []string, key string) int {
	ranks := map[string]int{}
	for i, key := range keys {
		joined := strings.Join(key, "\x00")
		if _, found := ranks[joined]; !found {
			ranks[joined] = i
		}
	}

	return func(path []string, key string) int {
		return ranks[strings.Join(append(path[:len(path):len(path)], key), "\x00")]
	}
}

func appendTOMLValue(events []Event, value interface{}) []Event {
	switch typedValue := value.(type) {
	case *orderedmap.Map:
		events = append(events, Event{Kind: MappingStart})
		typedValue.Iterate(func(k string, v interface{}) {
			events = append(events, stringScalar(k))
			events = appendTOMLValue(events, v)
		})
		return append(events, Event{Kind: MappingEnd})

	case []interface{}:
		events = append(events, Event{Kind: SequenceStart})
		for _, item := range typedValue {
			events = appendTOMLValue(events, item)
		}
		return append(events, Event{Kind: SequenceEnd})

	case string:
		return append(events, stringScalar(typedValue))

	case int64:
		return append(events, rawScalar(strconv.FormatInt(typedValue, 10)))

	case float64:
		return append(events, rawScalar(formatFloat(typedValue)))

	case bool:
		return append(events, rawScalar(strconv.FormatBool(typedValue)))

	case time.Time:
		return append(events, stringScalar(formatTOMLTime(typedValue)))

	default:
		return append(events, stringScalar(fmt.Sprintf("%v", typedValue)))
	}
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	case math.IsNaN(v):
		return ".nan"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		// keep floats from reading back as integers
		s += ".0"
	}
	return s
}

// formatTOMLTime keeps local dates and times (decoded with marker locations)
// free of an offset.
func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}
