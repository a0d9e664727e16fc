package query

// Whitelist keeps only the allowed keys of a submitted payload. Keys that were
// sent with a null value are kept; keys that were not sent stay absent.
func Whitelist(raw map[string]any, allowed []string) map[string]any {
	out := make(map[string]any, len(allowed))
	for _, key := range allowed {
		if v, ok := raw[key]; ok {
			out[key] = v
		}
	}
	return out
}
