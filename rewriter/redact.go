package rewriter

import "strings"

// MaskSensitive masks a secret, showing only the first and last showChars
// characters. Short values are masked completely.
func MaskSensitive(value string, showChars int) string {
	if len(value) <= showChars*2 {
		return strings.Repeat("*", len(value))
	}
	return value[:showChars] + strings.Repeat("*", len(value)-showChars*2) + value[len(value)-showChars:]
}

// RedactedHeaders returns a copy of headers safe to log: token and key
// values are masked.
func (d *Descriptor) RedactedHeaders() map[string]string {
	out := make(map[string]string, len(d.Headers))
	for name, value := range d.Headers {
		if sensitiveHeaders[name] {
			value = MaskSensitive(value, 2)
		}
		out[name] = value
	}
	return out
}
