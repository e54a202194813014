package utils

import "strconv"

// StrToInt64 converts a string to an int64, as used for path and query
// parameters carrying database IDs.
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
