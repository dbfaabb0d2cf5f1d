package utils

import "testing"

func TestNextDemandSerialSeedsFromFloor(t *testing.T) {
	if got := NextDemandSerial(nil); got != "SF-100" {
		t.Errorf("empty sheet = %q, want SF-100", got)
	}
	if got := NextDemandSerial([]string{"garbage", "SF-abc", ""}); got != "SF-100" {
		t.Errorf("unparseable sheet = %q, want SF-100", got)
	}
}

func TestNextDemandSerialFollowsMax(t *testing.T) {
	values := []string{"SF-100", "SF-205", "SF-103", "SJC-999"}
	if got := NextDemandSerial(values); got != "SF-206" {
		t.Errorf("got %q, want SF-206", got)
	}
}

func TestNextJobCardSerialSeedsFromFloor(t *testing.T) {
	if got := NextJobCardSerial([]string{"SJC-12"}); got != "SJC-381" {
		t.Errorf("got %q, want SJC-381 when max below floor", got)
	}
	if got := NextJobCardSerial([]string{"SJC-381"}); got != "SJC-382" {
		t.Errorf("got %q, want SJC-382", got)
	}
}

func TestNextActualSerialPadding(t *testing.T) {
	if got := NextActualSerial(nil); got != "SA-001" {
		t.Errorf("empty sheet = %q, want SA-001", got)
	}
	if got := NextActualSerial([]string{"SA-009"}); got != "SA-010" {
		t.Errorf("got %q, want SA-010", got)
	}
	if got := NextActualSerial([]string{"SA-099"}); got != "SA-100" {
		t.Errorf("got %q, want SA-100", got)
	}
	if got := NextActualSerial([]string{"SA-999"}); got != "SA-1000" {
		t.Errorf("got %q, want SA-1000 past the pad width", got)
	}
}

func TestNextSerialIgnoresForeignPrefixes(t *testing.T) {
	values := []string{"SA-050", "SF-400", "SJC-500"}
	if got := NextActualSerial(values); got != "SA-051" {
		t.Errorf("got %q, want SA-051", got)
	}
}

func TestNextSerialMonotonic(t *testing.T) {
	values := []string{"SF-150"}
	for i := 0; i < 5; i++ {
		values = append(values, NextDemandSerial(values))
	}
	if got := values[len(values)-1]; got != "SF-155" {
		t.Errorf("sequence ended at %q, want SF-155", got)
	}
}
