package client

// PageSize is the number of entries the API returns per call.
const PageSize = 20

// PageCount returns how many pages the legacy service requested for count
// entries: count/PageSize, plus one when the remainder is greater than one.
// A remainder of exactly one does not add a page, so 21 entries still fetch a
// single page.
func PageCount(count int) int {
	pages := count / PageSize
	if count%PageSize > 1 {
		pages++
	}
	return pages
}

// ExactPageCount is ceil(count/PageSize).
func ExactPageCount(count int) int {
	return (count + PageSize - 1) / PageSize
}
