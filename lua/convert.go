package lua

import (
	"math"

	glua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value to a plain Go value. Integral numbers become
// int, array-like tables become []any and other tables map[string]any.
// Functions and userdata convert to nil.
func toGo(v glua.LValue) any {
	switch v := v.(type) {
	case glua.LString:
		return string(v)
	case glua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f)
		}
		return f
	case glua.LBool:
		return bool(v)
	case *glua.LTable:
		if v.MaxN() > 0 {
			return arrayToGo(v)
		}
		m := make(map[string]any)
		v.ForEach(func(k, val glua.LValue) {
			m[k.String()] = toGo(val)
		})
		return m
	default:
		return nil
	}
}

// arrayToGo converts the array part of a table, 1..#t.
func arrayToGo(t *glua.LTable) []any {
	n := t.Len()
	out := make([]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, toGo(t.RawGetInt(i)))
	}
	return out
}

// toLua converts a Go value produced by toGo (or a plain scalar) back to
// Lua.
func toLua(L *glua.LState, v any) glua.LValue {
	switch v := v.(type) {
	case nil:
		return glua.LNil
	case string:
		return glua.LString(v)
	case int:
		return glua.LNumber(v)
	case int64:
		return glua.LNumber(v)
	case float64:
		return glua.LNumber(v)
	case bool:
		return glua.LBool(v)
	case []any:
		t := L.NewTable()
		for _, item := range v {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, item := range v {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	default:
		return glua.LNil
	}
}
