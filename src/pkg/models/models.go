package models

// PullRequest holds the slice of PR metadata the pipeline needs
type PullRequest struct {
	Number  int
	BaseRef string
	BaseSHA string
	HeadRef string
	HeadSHA string
}

// Comment represents an issue comment on a pull request
type Comment struct {
	ID   int64
	Body string
}
