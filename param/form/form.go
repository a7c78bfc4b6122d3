// Package form is a small package used to hold a few types common to the param
// package so that we don't have import cycles.
package form

//
// Public types
//

// Pair is a key/value pair as extracted from a form-encoded string. For
// example, "a=b" is the pair [a, b].
type Pair [2]string

// Values is a full slice of all the key/value pairs from a form-encoded
// string, in the order they appeared.
type Values []Pair

// Get returns the first value for key.
func (v Values) Get(key string) (string, bool) {
	for _, pair := range v {
		if pair[0] == key {
			return pair[1], true
		}
	}
	return "", false
}

// GetAll returns every value for key in order, or nil.
func (v Values) GetAll(key string) []string {
	var values []string
	for _, pair := range v {
		if pair[0] == key {
			values = append(values, pair[1])
		}
	}
	return values
}

// Has reports whether key appears at least once.
func (v Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}
