package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/timebalance/internal"
)

func TestBlocks(t *testing.T) {
	hours := internal.HourMap{
		6:  internal.Personal,
		7:  internal.Personal,
		8:  internal.PaidWork,
		9:  internal.PaidWork,
		10: internal.PaidWork,
		12: internal.PaidWork,
	}
	notes := internal.HourNotes{9: "review"}

	assert.Equal(t, []TimeBlock{
		{StartHour: 6, EndHour: 8, Category: internal.Personal},
		{StartHour: 8, EndHour: 9, Category: internal.PaidWork},
		{StartHour: 9, EndHour: 11, Category: internal.PaidWork, Note: "review"},
		{StartHour: 12, EndHour: 13, Category: internal.PaidWork},
	}, Blocks(hours, notes))

	assert.Equal(t, []TimeBlock{}, Blocks(nil, nil))
}

func TestExpandBlocks(t *testing.T) {
	hours, notes := ExpandBlocks([]TimeBlock{
		{StartHour: 22, EndHour: 30, Category: internal.Family, Note: "late"},
		{StartHour: 8, EndHour: 10, Category: internal.PaidWork},
		{StartHour: 9, EndHour: 10, Category: internal.Household},
		{StartHour: 12, EndHour: 14, Category: internal.Category("NAP")},
		{StartHour: 15, EndHour: 15, Category: internal.Personal, Note: "empty"},
	})

	assert.Equal(t, internal.HourMap{
		8:  internal.PaidWork,
		9:  internal.Household,
		22: internal.Family,
		23: internal.Family,
	}, hours)
	assert.Equal(t, internal.HourNotes{22: "late"}, notes)
}

func TestBlocksRoundTrip(t *testing.T) {
	hours := internal.HourMap{6: internal.Family, 7: internal.Family, 13: internal.UnpaidWork}
	notes := internal.HourNotes{6: "breakfast", 13: "volunteering"}

	gotHours, gotNotes := ExpandBlocks(Blocks(hours, notes))
	assert.Equal(t, hours, gotHours)
	assert.Equal(t, notes, gotNotes)
}
