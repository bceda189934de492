package constants

const (
	DEFAULT_MAX_BATCH_SIZE = 100
	MAX_STATUS_ITEMS       = 200
	DEFAULT_JOURNAL_LIMIT  = 20
	DEFAULT_STAKES_WINDOW  = uint64(100)
)
