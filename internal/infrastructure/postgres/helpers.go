package postgres

// scannable abstracts pgx.Row and pgx.Rows for the shared scan functions.
type scannable interface {
	Scan(dest ...any) error
}
