package usecase

// Exported for testing
var (
	FormatDate      = formatDate
	YearOf          = yearOf
	SplitAuthors    = splitAuthors
	LastURISegment  = lastURISegment
	CitationOf      = citationOf
	ResultErrorText = resultErrorText
)
