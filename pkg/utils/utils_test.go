package utils

import (
	"testing"
)

func TestPrettyPrint(t *testing.T) {
	expect(t, PrettyPrint(map[string]interface{}{"a": 1}), `{"a":1}`)
	expect(t, PrettyPrint([]string{"x", "y"}), `["x","y"]`)
	expect(t, PrettyPrint(nil), `null`)
}

func expect(t *testing.T, result string, expect string) {
	if expect != result {
		t.Errorf("Expected='%s' but got '%s'", expect, result)
	}
}
