package cli

import (
	"reflect"
	"testing"

	"github.com/ritualhq/ritual/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []int
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"names", "mon,wed,fri", []int{1, 3, 5}, false},
		{"full names", "Monday,Saturday", []int{1, 6}, false},
		{"indices", "0,6", []int{0, 6}, false},
		{"mixed with spaces", " tue , 4 ", []int{2, 4}, false},
		{"duplicates collapse", "mon,monday,1", []int{1}, false},
		{"out of range", "7", nil, true},
		{"garbage", "moonday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSchedule(t *testing.T) {
	daily := models.Habit{Frequency: models.FrequencyDaily}
	if got := FormatSchedule(daily); got != "daily" {
		t.Errorf("FormatSchedule(daily) = %q", got)
	}

	weekly := models.Habit{Frequency: models.FrequencyWeekly, TargetDays: []int{1, 3, 5}}
	if got := FormatSchedule(weekly); got != "weekly on Mon,Wed,Fri" {
		t.Errorf("FormatSchedule(weekly) = %q", got)
	}

	empty := models.Habit{Frequency: models.FrequencyWeekly}
	if got := FormatSchedule(empty); got != "weekly (no days set)" {
		t.Errorf("FormatSchedule(weekly, no days) = %q", got)
	}
}
