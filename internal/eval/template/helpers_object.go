package template

import (
	"sort"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func helperObjectKeys(c *Call) (interface{}, error) {
	obj, err := c.Object(0)
	if err != nil {
		return nil, err
	}
	keys := sortedKeys(obj)
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out, nil
}

func helperObjectValues(c *Call) (interface{}, error) {
	obj, err := c.Object(0)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(obj))
	for _, k := range sortedKeys(obj) {
		out = append(out, obj[k])
	}
	return out, nil
}

// helperObjectEntries returns [key, value] pairs
func helperObjectEntries(c *Call) (interface{}, error) {
	obj, err := c.Object(0)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(obj))
	for _, k := range sortedKeys(obj) {
		out = append(out, []interface{}{k, obj[k]})
	}
	return out, nil
}

func helperObjectHasKey(c *Call) (interface{}, error) {
	obj, err := c.Object(0)
	if err != nil {
		return nil, err
	}
	key, err := c.String(1)
	if err != nil {
		return nil, err
	}
	_, ok := obj[key]
	return ok, nil
}

// helperMergeObjects merges shallowly, later objects winning
func helperMergeObjects(c *Call) (interface{}, error) {
	out := make(map[string]interface{})
	for i := range c.Args {
		obj, err := c.Object(i)
		if err != nil {
			return nil, err
		}
		for k, v := range obj {
			out[k] = v
		}
	}
	return out, nil
}

func helperDeepClone(c *Call) (interface{}, error) {
	return value.Clone(c.Arg(0)), nil
}

// helperObjectMergeDeep merges recursively; nested objects are merged, any
// other value is replaced
func helperObjectMergeDeep(c *Call) (interface{}, error) {
	out := make(map[string]interface{})
	for i := range c.Args {
		obj, err := c.Object(i)
		if err != nil {
			return nil, err
		}
		mergeDeep(out, obj)
	}
	return out, nil
}

func mergeDeep(dst, src map[string]interface{}) {
	for k, v := range src {
		srcObj, srcIsObj := v.(map[string]interface{})
		dstObj, dstIsObj := dst[k].(map[string]interface{})
		if srcIsObj && dstIsObj {
			mergeDeep(dstObj, srcObj)
			continue
		}
		dst[k] = value.Clone(v)
	}
}

// helperObjectMap calls the named helper on every value, keeping the keys
func helperObjectMap(c *Call) (interface{}, error) {
	obj, err := c.Object(0)
	if err != nil {
		return nil, err
	}
	name, err := c.String(1)
	if err != nil {
		return nil, err
	}
	extra := c.Args[2:]

	out := make(map[string]interface{}, len(obj))
	for _, k := range sortedKeys(obj) {
		args := append([]interface{}{obj[k]}, extra...)
		mapped, err := c.Invoke(name, args...)
		if err != nil {
			return nil, err
		}
		out[k] = mapped
	}
	return out, nil
}
