package utils

import "testing"

func TestComputeFare(t *testing.T) {
	if got := ComputeFare(2, 3, 600, 300); got != 2100 {
		t.Fatalf("fare: got %d want 2100", got)
	}
	if got := ComputeFare(-1, 1, 600, 300); got != 300 {
		t.Fatalf("negative adults should count as zero, got %d", got)
	}
}

func TestFormatRupees(t *testing.T) {
	cases := map[int64]string{
		0:       "Rs. 0",
		600:     "Rs. 600",
		1200:    "Rs. 1,200",
		1234567: "Rs. 1,234,567",
		-4500:   "-Rs. 4,500",
	}
	for in, want := range cases {
		if got := FormatRupees(in); got != want {
			t.Fatalf("FormatRupees(%d) = %q want %q", in, got, want)
		}
	}
}

func TestJoinDistinct(t *testing.T) {
	got := JoinDistinct([]string{"Ravi", "", " Ravi ", "Anil"})
	if got != "Ravi, Anil" {
		t.Fatalf("got %q", got)
	}
}
