package repository

import "fmt"

// limitOffset renders the trailing LIMIT/OFFSET clause. Size is capped at
// 100. When neither page nor size is set the clause is omitted entirely, so
// internal callers (exports) read the full result set while handlers, which
// always supply defaults, stay paginated.
func limitOffset(page, size int) string {
	if page < 1 && size <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", size, (page-1)*size)
}
