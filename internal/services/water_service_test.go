package services

import (
	"errors"
	"testing"
	"time"
)

func TestWaterServiceAddValidatesAmount(t *testing.T) {
	service := NewWaterService(&waterRepositoryStub{}, time.UTC)
	day := time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)

	for _, amount := range []int{0, -250, MaxWaterEntryML + 1} {
		if _, err := service.Add(1, day, amount); !errors.Is(err, ErrWaterAmountInvalid) {
			t.Fatalf("Add(%d) expected ErrWaterAmountInvalid, got %v", amount, err)
		}
	}
	if _, err := service.Add(1, day, MaxWaterEntryML); err != nil {
		t.Fatalf("Add(max) returned error: %v", err)
	}
}

func TestWaterServiceDayTotals(t *testing.T) {
	water := &waterRepositoryStub{}
	service := NewWaterService(water, time.UTC)
	day := time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)

	for _, amount := range []int{250, 500, 300} {
		if _, err := service.Add(1, day, amount); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}
	if _, err := service.Add(2, day, 900); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	summary, err := service.Day(1, day)
	if err != nil {
		t.Fatalf("Day returned error: %v", err)
	}
	if len(summary.Entries) != 3 || summary.TotalML != 1050 {
		t.Fatalf("unexpected day summary %#v", summary)
	}
	if summary.GoalML != WaterGoalML || summary.Percent != 52.5 {
		t.Fatalf("expected 52.5%% of %d ml, got %v", WaterGoalML, summary.Percent)
	}

	if err := service.Delete(2, summary.Entries[0].ID); !errors.Is(err, ErrWaterEntryNotFound) {
		t.Fatalf("expected ErrWaterEntryNotFound for foreign entry, got %v", err)
	}
}
