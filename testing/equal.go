// Package testing holds small assertion helpers shared by the waymark test
// suites.
package testing

import "reflect"

// Equal is a helper for comparing value equality, following these rules:
//  - Values with equivalent types are compared with reflect.DeepEqual.
//  - A nil slice and an empty slice of the same element type are equal,
//    so table expectations may leave zero-value slices out.
//  - strings and byte slices are converted to strings before comparison.
//  - else, return false.
func Equal(a, b interface{}) bool {
	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		if reflect.DeepEqual(a, b) {
			return true
		}
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.Kind() == reflect.Slice && va.Len() == 0 && vb.Len() == 0 {
			return true
		}
		return false
	}
	switch a := a.(type) {
	case string:
		if b, ok := b.([]byte); ok {
			return a == string(b)
		}
	case []byte:
		if b, ok := b.(string); ok {
			return string(a) == b
		}
	}
	return false
}
