package campus

var ParseDateRange = parseDateRange
