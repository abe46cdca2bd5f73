package tasks

import (
	"fmt"
	"strings"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time progress lines to the CLI layer.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	LoadIndex Phase = iota
	FetchPage
	PageDone
	PageFailed
	ItemAdded
	SaveCheckpoint
	FetchFeed
)

func (p Phase) String() string {
	switch p {
	case LoadIndex:
		return "load_index"
	case FetchPage:
		return "fetch_page"
	case PageDone:
		return "page_done"
	case PageFailed:
		return "page_failed"
	case ItemAdded:
		return "item_added"
	case SaveCheckpoint:
		return "save_checkpoint"
	case FetchFeed:
		return "fetch_feed"
	default:
		return ""
	}
}

func loadingIndexUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadIndex,
		Total:   1,
		Message: "Fetching existing torrents from Real-Debrid...",
	}
}

func indexLoadedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadIndex,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d existing torrents", count),
	}
}

func fetchingPageUpdate(page, endPage int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page,
		Total:   endPage,
		Message: fmt.Sprintf("[Page %d/%d] Fetching movies...", page, endPage),
	}
}

func pageDoneUpdate(page, endPage, added, skipped, failed int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PageDone,
		Step:    page,
		Total:   endPage,
		Message: fmt.Sprintf("[Page %d/%d] Progress: Added=%d, Skipped=%d, Failed=%d", page, endPage, added, skipped, failed),
	}
}

func pageFailedUpdate(page, endPage int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PageFailed,
		Step:    page,
		Total:   endPage,
		Message: fmt.Sprintf("[Page %d/%d] Fetch failed, continuing: %v", page, endPage, err),
	}
}

func itemAddedUpdate(step, total int, title string, qualities []string) ProgressUpdate {
	message := fmt.Sprintf("Added %s", title)
	if len(qualities) > 0 {
		message = fmt.Sprintf("Added %s [%s]", title, strings.Join(qualities, ", "))
	}
	return ProgressUpdate{
		Phase:   ItemAdded,
		Step:    step,
		Total:   total,
		Message: message,
	}
}

func checkpointUpdate(page int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveCheckpoint,
		Step:    page,
		Message: fmt.Sprintf("Checkpoint saved at page %d", page),
	}
}

func fetchingFeedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeed,
		Total:   1,
		Message: "Fetching episodes from feed...",
	}
}

func feedLoadedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeed,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d episodes in feed", count),
	}
}
