package models

import "strings"

// Backend status values for goods. Tasks are goods with the is_task flag,
// so they share the same status column.
const (
	RawStatusAvailable  = "available"
	RawStatusInProgress = "in_progress"
	RawStatusSold       = "sold"
)

// Localized status strings shown in the UI. These match the strings the
// backend contract tests were written against, so they must not be reworded.
const (
	StatusForSale = "在售"
	StatusSold    = "已售"

	TaskStatusOpen       = "待接单"
	TaskStatusInProgress = "进行中"
	TaskStatusDone       = "已完成"
)

// PlaceholderImage is used whenever no image URLs can be resolved for a
// record (empty list, failed or timed-out image lookup).
const PlaceholderImage = "https://placehold.co/400x300?text=No+Image"

// GoodRecord mirrors the wire shape of a backend good, before any
// UI-facing renaming.
type GoodRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Num         int     `json:"num"`
	Description string  `json:"description"`
	SellerID    int64   `json:"seller_id"`
	Status      string  `json:"status"`
	IsTask      bool    `json:"is_task"`
	Labels      []int64 `json:"labels"`
	CreatedAt   int64   `json:"created_at"`
}

// Good is a marketplace listing as the views consume it.
type Good struct {
	ID          int64
	Title       string
	Price       float64
	Description string
	SellerID    int64
	Status      string
	Images      []string
	CreatedAt   int64
}

// Task is an errand request. On the wire it is a Good with is_task set and
// notes/location packed into the description.
type Task struct {
	ID          int64
	Title       string
	Bounty      float64
	Notes       string
	Location    string
	PublisherID int64
	Status      string
	Images      []string
	CreatedAt   int64
}

// GoodFromRecord remaps backend field names to the UI shape. Images are
// resolved separately and attached by the caller.
func GoodFromRecord(rec GoodRecord) Good {
	return Good{
		ID:          rec.ID,
		Title:       rec.Name,
		Price:       rec.Value,
		Description: rec.Description,
		SellerID:    rec.SellerID,
		Status:      localizeGoodStatus(rec.Status),
		CreatedAt:   rec.CreatedAt,
	}
}

// TaskFromRecord remaps a task-flagged good, unpacking the description.
func TaskFromRecord(rec GoodRecord) Task {
	notes, location := SplitTaskDescription(rec.Description)
	return Task{
		ID:          rec.ID,
		Title:       rec.Name,
		Bounty:      rec.Value,
		Notes:       notes,
		Location:    location,
		PublisherID: rec.SellerID,
		Status:      localizeTaskStatus(rec.Status),
		CreatedAt:   rec.CreatedAt,
	}
}

func localizeGoodStatus(raw string) string {
	if raw == RawStatusAvailable {
		return StatusForSale
	}
	return StatusSold
}

func localizeTaskStatus(raw string) string {
	switch raw {
	case RawStatusAvailable:
		return TaskStatusOpen
	case RawStatusInProgress:
		return TaskStatusInProgress
	default:
		return TaskStatusDone
	}
}

// SplitTaskDescription unpacks the "notes|location" convention used for
// tasks: the part before the first '|' is the notes, the rest the location.
// Without a '|' the whole string is notes. There is no escaping, so a
// literal '|' inside the notes will leak into the location; the backend
// contract does not allow changing this.
func SplitTaskDescription(desc string) (notes, location string) {
	if i := strings.Index(desc, "|"); i >= 0 {
		return desc[:i], desc[i+1:]
	}
	return desc, ""
}

// PackTaskDescription is the encode half of SplitTaskDescription. Every
// pack/unpack of the convention must go through this pair.
func PackTaskDescription(notes, location string) string {
	return notes + "|" + location
}

// ResolveImageURLs prefixes relative image paths with the base URL and
// substitutes the placeholder for an empty list.
func ResolveImageURLs(urls []string, baseURL string) []string {
	if len(urls) == 0 {
		return []string{PlaceholderImage}
	}
	resolved := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.HasPrefix(u, "/") {
			u = strings.TrimRight(baseURL, "/") + u
		}
		resolved = append(resolved, u)
	}
	return resolved
}
