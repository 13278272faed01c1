package main

import (
	"bytes"
	"strings"
	"testing"

	"medieval-rogue/internal/config"
	"medieval-rogue/internal/run"
)

func TestPrintPlan(t *testing.T) {
	plan := run.GenerateFloor(config.Default(), 42, 0)

	var buf bytes.Buffer
	printPlan(&buf, plan)
	out := buf.String()

	for _, mark := range []string{"S", "B", "I"} {
		if !strings.Contains(out, mark) {
			t.Errorf("output has no %q room:\n%s", mark, out)
		}
	}
	if got := strings.Count(out, "\n"); got < plan.Len() {
		t.Errorf("printed %d lines for %d rooms", got, plan.Len())
	}
}

func TestPrintPlanIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	printPlan(&a, run.GenerateFloor(config.Default(), 7, 1))
	printPlan(&b, run.GenerateFloor(config.Default(), 7, 1))
	if a.String() != b.String() {
		t.Fatal("same seed printed different floors")
	}
}
