package sqlstore

import (
	"fmt"
	"unicode/utf8"
)

// emailPartLimit is the byte capacity of one proposal_email_part column.
const emailPartLimit = 65535

// splitEmail cuts s into at most three parts of no more than limit bytes,
// never inside a UTF-8 sequence. Concatenating the parts restores s.
func splitEmail(s string, limit int) ([3]string, error) {
	var parts [3]string
	if limit < utf8.UTFMax {
		return parts, fmt.Errorf("split limit %d is below %d bytes", limit, utf8.UTFMax)
	}

	rest := s
	for i := range parts {
		if len(rest) <= limit {
			parts[i] = rest
			return parts, nil
		}
		cut := limit
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		parts[i] = rest[:cut]
		rest = rest[cut:]
	}

	if rest != "" {
		return parts, fmt.Errorf("%w: %d bytes exceed %d parts of %d", ErrEmailTooLong, len(s), len(parts), limit)
	}
	return parts, nil
}
