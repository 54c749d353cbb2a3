package jsonadapt

import (
	"strconv"
	"strings"
)

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// At resolves a JSON Pointer against a. Both "" and "/" address a itself,
// matching the root paths reported by Diff.
func At(a Adapter, pointer string) (Adapter, bool) {
	if a == nil {
		return nil, false
	}
	if pointer == "" || pointer == "/" {
		return a, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, false
	}
	cur := a
	for _, tok := range strings.Split(pointer[1:], "/") {
		tok = pointerUnescaper.Replace(tok)
		switch {
		case cur.IsObject():
			next, ok := cur.Member(tok)
			if !ok {
				return nil, false
			}
			cur = next
		case cur.IsArray():
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= cur.Len() {
				return nil, false
			}
			next, ok := nth(cur, i)
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, true
}

func nth(a Adapter, i int) (Adapter, bool) {
	for e := range a.Elements() {
		if i == 0 {
			return e, true
		}
		i--
	}
	return nil, false
}
