// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"sort"
)

// Conversion turns nested native maps into *Map values (and back).
type Conversion struct {
	Object interface{}
	// Rank orders the keys of the map found at path (the keys leading to
	// it); lower ranks come first and equal ranks sort by key. Nil sorts
	// every map by key.
	Rank func(path []string, key string) int
}

func (c Conversion) AsUnorderedStringMaps() interface{} {
	return c.asUnorderedStringMaps(c.Object)
}

func (c Conversion) asUnorderedStringMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[string]interface{}:
		panic("Expected *orderedmap.Map instead of map[string]interface{} in asUnorderedStringMaps")

	case *Map:
		result := map[string]interface{}{}
		typedObj.Iterate(func(k string, v interface{}) {
			result[k] = c.asUnorderedStringMaps(v)
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.asUnorderedStringMaps(item)
		}
		return result

	default:
		return typedObj
	}
}

func (c Conversion) FromUnorderedMaps() interface{} {
	return c.fromUnorderedMaps(nil, c.Object)
}

func (c Conversion) fromUnorderedMaps(path []string, object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[string]interface{}:
		result := NewMap()
		for _, key := range c.sortedMapKeys(path, typedObj) {
			result.Set(key, c.fromUnorderedMaps(append(path[:len(path):len(path)], key), typedObj[key]))
		}
		return result

	case []map[string]interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnorderedMaps(path, item)
		}
		return result

	case *Map:
		panic("Expected map[string]interface{} instead of *orderedmap.Map in fromUnorderedMaps")

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnorderedMaps(path, item)
		}
		return result

	default:
		return typedObj
	}
}

func (c Conversion) sortedMapKeys(path []string, m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if c.Rank != nil {
			iRank, jRank := c.Rank(path, keys[i]), c.Rank(path, keys[j])
			if iRank != jRank {
				return iRank < jRank
			}
		}
		return keys[i] < keys[j]
	})
	return keys
}
