package search

const (
	defaultSize = 10
	maxSize     = 100
)

// Calculate turns 1-based page/size query values into an offset and limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	return (page - 1) * size, size
}
