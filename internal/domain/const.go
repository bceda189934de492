package domain

const (
	// Pagination constants
	MAX_JOURNAL_PAGE_SIZE = 100
)
