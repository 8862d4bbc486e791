package service

import (
	"sort"

	"github.com/yourname/timebalance/internal"
)

// TimeBlock is a run of consecutive hours [StartHour, EndHour) with the
// same category.
type TimeBlock struct {
	StartHour int               `json:"startHour"`
	EndHour   int               `json:"endHour"`
	Category  internal.Category `json:"category" validate:"category"`
	Note      string            `json:"note,omitempty"`
}

// Blocks merges consecutive hours of the same category. An hour carrying
// a note always starts a new block so the note keeps its hour.
func Blocks(hours internal.HourMap, notes internal.HourNotes) []TimeBlock {
	keys := make([]int, 0, len(hours))
	for h, cat := range hours {
		if cat.Valid() {
			keys = append(keys, h)
		}
	}
	sort.Ints(keys)

	blocks := []TimeBlock{}
	for _, h := range keys {
		cat := hours[h]
		note := notes[h]
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			if last.EndHour == h && last.Category == cat && note == "" {
				last.EndHour = h + 1
				continue
			}
		}
		blocks = append(blocks, TimeBlock{StartHour: h, EndHour: h + 1, Category: cat, Note: note})
	}
	return blocks
}

// ExpandBlocks turns blocks back into per-hour maps. StartHour is clamped
// to 0..23 and EndHour to 1..24; a block's note lands on its first hour.
// Later blocks overwrite earlier ones where they overlap.
func ExpandBlocks(blocks []TimeBlock) (internal.HourMap, internal.HourNotes) {
	hours := internal.HourMap{}
	notes := internal.HourNotes{}
	for _, b := range blocks {
		start := clamp(b.StartHour, 0, 23)
		end := clamp(b.EndHour, 1, 24)
		if !b.Category.Valid() {
			continue
		}
		for h := start; h < end; h++ {
			hours[h] = b.Category
		}
		if b.Note != "" && start < end {
			notes[start] = b.Note
		}
	}
	return hours, notes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
