package transfer

import "testing"

func applyAll(events ...Event) State {
	var s State
	for _, ev := range events {
		s = Transition(s, ev)
	}
	return s
}

func TestTransitionSequences(t *testing.T) {
	testCases := []struct {
		name   string
		events []Event
		want   State
	}{
		{
			name:   "idle",
			events: nil,
			want:   State{},
		},
		{
			name:   "submit shows panel at step 1",
			events: []Event{EventSubmit},
			want:   State{Step: 1, Visible: true},
		},
		{
			name:   "full run reaches completed step 5",
			events: []Event{EventSubmit, EventAdvance, EventAdvance, EventAdvance, EventAdvance},
			want:   State{Step: 5, Visible: true, Complete: true},
		},
		{
			name:   "advance beyond last step is ignored",
			events: []Event{EventSubmit, EventAdvance, EventAdvance, EventAdvance, EventAdvance, EventAdvance},
			want:   State{Step: 5, Visible: true, Complete: true},
		},
		{
			name:   "advance from idle is ignored",
			events: []Event{EventAdvance},
			want:   State{},
		},
		{
			name:   "fail at step 2 hides panel and freezes step",
			events: []Event{EventSubmit, EventAdvance, EventFail},
			want:   State{Step: 2, Visible: false},
		},
		{
			name:   "fail at step 3 hides panel and freezes step",
			events: []Event{EventSubmit, EventAdvance, EventAdvance, EventFail},
			want:   State{Step: 3, Visible: false},
		},
		{
			name:   "advance after fail is ignored",
			events: []Event{EventSubmit, EventAdvance, EventFail, EventAdvance},
			want:   State{Step: 2, Visible: false},
		},
		{
			name:   "submit while running is ignored",
			events: []Event{EventSubmit, EventSubmit},
			want:   State{Step: 1, Visible: true},
		},
		{
			name:   "reset returns to idle from any state",
			events: []Event{EventSubmit, EventAdvance, EventAdvance, EventReset},
			want:   State{},
		},
		{
			name:   "reset after fail allows a fresh submit",
			events: []Event{EventSubmit, EventAdvance, EventFail, EventReset, EventSubmit},
			want:   State{Step: 1, Visible: true},
		},
		{
			name:   "resubmit after fail restarts at step 1",
			events: []Event{EventSubmit, EventAdvance, EventFail, EventSubmit},
			want:   State{Step: 1, Visible: true},
		},
		{
			name:   "resubmit after fail at step 3 runs to completion",
			events: []Event{EventSubmit, EventAdvance, EventAdvance, EventFail, EventSubmit, EventAdvance, EventAdvance, EventAdvance, EventAdvance},
			want:   State{Step: 5, Visible: true, Complete: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := applyAll(tc.events...)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestTransitionIsPure(t *testing.T) {
	s := State{Step: 2, Visible: true}
	before := s
	_ = Transition(s, EventAdvance)
	if s != before {
		t.Errorf("input state mutated: %+v", s)
	}
}

func TestStatusOf(t *testing.T) {
	stages := Stages()
	if len(stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(stages))
	}

	testCases := []struct {
		name string
		step int
		want []StageStatus
	}{
		{"idle", 0, []StageStatus{StagePending, StagePending, StagePending, StagePending, StagePending}},
		{"step 1", 1, []StageStatus{StageActive, StagePending, StagePending, StagePending, StagePending}},
		{"step 3", 3, []StageStatus{StageCompleted, StageCompleted, StageActive, StagePending, StagePending}},
		{"step 5", 5, []StageStatus{StageCompleted, StageCompleted, StageCompleted, StageCompleted, StageActive}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := State{Step: tc.step, Visible: true}
			for i, stage := range stages {
				if got := s.StatusOf(stage); got != tc.want[i] {
					t.Errorf("stage %d: got %q, want %q", stage.ID, got, tc.want[i])
				}
			}
		})
	}
}
