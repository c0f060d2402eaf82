package db

type Override struct {
	OldID     string
	NewID     string
	UpdatedAt int64
}

type Run struct {
	ID           string
	StartedAt    int64
	Threshold    float64
	TopK         int64
	OldCount     int64
	NewCount     int64
	Auto         int64
	ManualReview int64
	NoMatch      int64
}
