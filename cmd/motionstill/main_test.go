package main

import "testing"

func TestParseTimes(t *testing.T) {
	got, err := parseTimes(" 0, 4.5,,23.9 ")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 4.5, 23.9}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, err := parseTimes("1,x"); err == nil {
		t.Error("expected an error for a bad value")
	}
	for _, bad := range []string{"inf", "-Inf", "NaN", "1,+inf"} {
		if _, err := parseTimes(bad); err == nil {
			t.Errorf("%q: expected an error for a non-finite value", bad)
		}
	}
	if got, _ := parseTimes(""); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}
