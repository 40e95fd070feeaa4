package ingest

// Phase is the stage a run has reached.
type Phase int

const (
	NotStarted Phase = iota
	PerFeed
	Filtering
	Deduplicating
	Reporting
	Saved
	Empty
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case PerFeed:
		return "per_feed"
	case Filtering:
		return "filtering"
	case Deduplicating:
		return "deduplicating"
	case Reporting:
		return "reporting"
	case Saved:
		return "saved"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}
