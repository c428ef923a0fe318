package channel

import "github.com/hbollon/go-edlib"

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.8

// Suggest returns the known method closest to method, or "" when nothing is
// similar enough. Exact matches return "".
func Suggest(method string) string {
	if method == "" || method == MethodScanFile {
		return ""
	}
	score := edlib.JaroWinklerSimilarity(method, MethodScanFile)
	if float64(score) < suggestThreshold {
		return ""
	}
	return MethodScanFile
}
