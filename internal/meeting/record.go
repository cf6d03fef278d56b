package meeting

import (
	"strconv"

	"github.com/google/uuid"
)

// Record is the completed meeting handed to a sink on confirmation
type Record struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Date         string   `json:"date"`
	Duration     string   `json:"duration"`
	Participants []string `json:"participants"`
	Timezone     string   `json:"timezone"`
	Priority     Priority `json:"priority"`
	ThemeColor   string   `json:"themeColor"`
	Time         string   `json:"time"`
}

// NewRecord combines a draft with the chosen time label
func NewRecord(d Draft, timeLabel string) Record {
	return Record{
		ID:           uuid.NewString(),
		Title:        d.Title,
		Description:  d.Description,
		Date:         d.DateString(),
		Duration:     strconv.Itoa(d.Duration),
		Participants: append([]string(nil), d.Participants...),
		Timezone:     d.Timezone,
		Priority:     d.Priority,
		ThemeColor:   d.ThemeColor,
		Time:         timeLabel,
	}
}
