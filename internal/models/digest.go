package models

// DigestContent aggregates same-day content from each source before it is
// handed to the completion API. Rebuilt on every digest run, never persisted.
type DigestContent struct {
	Emails     string `json:"emails"`
	NotionDocs string `json:"notion_docs"`
	Meetings   string `json:"meetings"`
}
