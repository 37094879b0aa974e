package domain

// GitHubEvent is the subset of a GitHub public event used for summaries.
type GitHubEvent struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
}

// Summary renders the event as "<type> :: <owner/repo>".
func (e GitHubEvent) Summary() string {
	return e.Type + " :: " + e.Repo.Name
}

// SummarizeEvents returns the summaries of the first limit events, in feed order.
func SummarizeEvents(events []GitHubEvent, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if len(events) < limit {
		limit = len(events)
	}
	lines := make([]string, 0, limit)
	for _, e := range events[:limit] {
		lines = append(lines, e.Summary())
	}
	return lines
}
