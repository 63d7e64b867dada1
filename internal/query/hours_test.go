package query

import "testing"

func TestServiceHours(t *testing.T) {
	cases := []struct {
		line string
		want float64
	}{
		{"AI Consultancy (2 hours)", 2},
		{"Pairing session (1 hour)", 1},
		{"Code review (0.5 hours)", 0.5},
		{"Workshop (10.25 hours)", 10.25},
		{"Review", 1},
		{"Consulting (two hours)", 1},
		{"Consulting (2 days)", 1},
		{"", 1},
		{"(3hours)", 3},
		{"(4 hour)", 4},
	}

	for _, tc := range cases {
		if got := ServiceHours(tc.line); got != tc.want {
			t.Errorf("ServiceHours(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
