package absence

import (
	"errors"
	"testing"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		current string
		next    string
		want    error
	}{
		{StatusPending, StatusApproved, nil},
		{StatusPending, StatusRejected, nil},
		{StatusApproved, StatusRejected, ErrInvalidTransition},
		{StatusRejected, StatusApproved, ErrInvalidTransition},
		{StatusApproved, StatusApproved, ErrInvalidTransition},
		{StatusPending, StatusPending, ErrInvalidStatus},
		{StatusPending, "cancelled", ErrInvalidStatus},
	}
	for _, tc := range tests {
		err := CheckTransition(tc.current, tc.next)
		if tc.want == nil && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.current, tc.next, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.current, tc.next, tc.want, err)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(StatusPending) != "Oczekujące" || StatusLabel("other") != "other" {
		t.Fatal("unexpected labels")
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(StatusRejected) || ValidStatus("cancelled") {
		t.Fatal("unexpected status check")
	}
}
