package internal

import "fmt"

// Category is an activity tag painted on an hour. "No activity" is not a
// Category: it is the absence of an entry in a grid or hour map.
type Category string

const (
	Personal     Category = "PERSONAL"
	Family       Category = "FAMILY"
	Household    Category = "HOUSEHOLD"
	Relationship Category = "RELATIONSHIP"
	PaidWork     Category = "PAID_WORK"
	UnpaidWork   Category = "UNPAID_WORK"
)

// EmptyLiteral is the wire value clients send for an unassigned cell.
const EmptyLiteral = "EMPTY"

// AllCategories lists every category in display order.
var AllCategories = []Category{Personal, Family, Household, Relationship, PaidWork, UnpaidWork}

var categoryLabels = map[Category]string{
	Personal:     "Personal time",
	Family:       "Family",
	Household:    "Household",
	Relationship: "Relationship",
	PaidWork:     "Paid work",
	UnpaidWork:   "Unpaid work",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Index returns the position of c in AllCategories, or -1.
func (c Category) Index() int {
	for i, cat := range AllCategories {
		if cat == c {
			return i
		}
	}
	return -1
}

// ParseCategory returns ErrNoCategory for the empty sentinel and
// ErrUnknownCategory for anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	if s == "" || s == EmptyLiteral {
		return "", ErrNoCategory
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// CategoryHours is a per-category hour total.
type CategoryHours map[Category]int

// NewCategoryHours returns a total with every category present at zero.
func NewCategoryHours() CategoryHours {
	h := make(CategoryHours, len(AllCategories))
	for _, c := range AllCategories {
		h[c] = 0
	}
	return h
}

// Add counts one hour for c; values outside the closed set are ignored.
func (h CategoryHours) Add(c Category) {
	if c.Valid() {
		h[c]++
	}
}

func (h CategoryHours) Total() int {
	sum := 0
	for _, v := range h {
		sum += v
	}
	return sum
}
