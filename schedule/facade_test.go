package schedule

import (
	"context"
	"testing"

	league "leaguesched"
	"leaguesched/availability"
)

func win(start, end int64) availability.Window {
	return availability.Window{Start: start, End: end}
}

func TestScheduleMixedFieldsProducesFullOutput(t *testing.T) {
	in := &league.ScheduledInput{
		UniqueID: 1,
		Fields: []league.FieldInput{
			{
				FieldID: 1,
				TimeSlots: []league.TimeSlotSpec{
					{Window: win(0, 3600), Concurrency: 1},
					{Window: win(3600, 7200), Concurrency: 1},
				},
				Practice: false,
			},
			{
				FieldID: 2,
				TimeSlots: []league.TimeSlotSpec{
					{Window: win(0, 3600), Concurrency: 1},
				},
				Practice: true,
			},
		},
		TeamGroups: [][]league.TeamID{{1, 2, 3, 4}},
	}

	f := New(nil)
	out, err := f.Schedule(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.TimeSlots) != 3 {
		t.Fatalf("expected 3 reservations (2 game slots + 1 practice slot), got %d", len(out.TimeSlots))
	}
	if out.UniqueID != 1 {
		t.Fatalf("expected unique id to round-trip, got %d", out.UniqueID)
	}

	for i := 1; i < len(out.TimeSlots); i++ {
		if out.TimeSlots[i].Window.Start < out.TimeSlots[i-1].Window.Start {
			t.Fatalf("reservations not sorted by window start at index %d", i)
		}
	}
}

func TestScheduleRejectsInvalidInput(t *testing.T) {
	in := &league.ScheduledInput{UniqueID: 2}
	f := New(nil)

	if _, err := f.Schedule(context.Background(), in); err == nil {
		t.Fatal("expected a Configuration error for a region with no fields")
	}
}

func TestDispatchSchedulesRegionsIndependently(t *testing.T) {
	region := func(id uint32) *league.ScheduledInput {
		return &league.ScheduledInput{
			UniqueID: id,
			Fields: []league.FieldInput{
				{
					FieldID:   1,
					TimeSlots: []league.TimeSlotSpec{{Window: win(0, 3600), Concurrency: 1}},
				},
			},
			TeamGroups: [][]league.TeamID{{1, 2}},
		}
	}

	f := New(nil)
	outs, err := f.Dispatch(context.Background(), []*league.ScheduledInput{region(1), region(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outs) != 2 || outs[0].UniqueID != 1 || outs[1].UniqueID != 2 {
		t.Fatalf("expected outputs in input order, got %+v", outs)
	}
}
