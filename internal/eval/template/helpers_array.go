package template

import (
	"sort"

	"github.com/aescanero/dago-node-langjson/internal/value"
)

func includes(arr []interface{}, v interface{}) bool {
	for _, item := range arr {
		if value.Equal(item, v) {
			return true
		}
	}
	return false
}

func helperArrayLength(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	return float64(len(arr)), nil
}

func helperArrayIncludes(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	return includes(arr, c.Arg(1)), nil
}

// helperUniqueArray keeps the first occurrence of each value
func helperUniqueArray(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(arr))
	for _, item := range arr {
		if !includes(out, item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// helperFlattenArray flattens one level of nesting
func helperFlattenArray(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(arr))
	for _, item := range arr {
		if inner, ok := item.([]interface{}); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func helperChunkArray(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	size, err := c.Int(1)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, argError(c, 1, "positive size", float64(size))
	}

	out := make([]interface{}, 0, (len(arr)+size-1)/size)
	for start := 0; start < len(arr); start += size {
		end := min(start+size, len(arr))
		chunk := make([]interface{}, end-start)
		copy(chunk, arr[start:end])
		out = append(out, chunk)
	}
	return out, nil
}

// helperShuffleArray returns a shuffled copy
func helperShuffleArray(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(arr))
	copy(out, arr)
	for i := len(out) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// helperArrayMap calls the named helper on every element. Extra arguments
// follow the element.
func helperArrayMap(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	name, err := c.String(1)
	if err != nil {
		return nil, err
	}
	extra := c.Args[2:]

	out := make([]interface{}, len(arr))
	for i, item := range arr {
		args := append([]interface{}{item}, extra...)
		mapped, err := c.Invoke(name, args...)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}

// helperArraySort returns a sorted copy. Numbers sort numerically, anything
// else by its string form; "desc" reverses the order.
func helperArraySort(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	order, err := c.StringOr(1, "asc")
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, len(arr))
	copy(out, arr)
	sort.SliceStable(out, func(i, j int) bool {
		if order == "desc" {
			return sortLess(out[j], out[i])
		}
		return sortLess(out[i], out[j])
	})
	return out, nil
}

func sortLess(a, b interface{}) bool {
	fa, okA := a.(float64)
	fb, okB := b.(float64)
	if okA && okB {
		return fa < fb
	}
	return value.ToString(a) < value.ToString(b)
}

func helperFirst(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return arr[0], nil
}

func helperLast(c *Call) (interface{}, error) {
	arr, err := c.Array(0)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return arr[len(arr)-1], nil
}
