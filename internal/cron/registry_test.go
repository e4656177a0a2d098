package cron

import (
	"context"
	"testing"
)

type fakeJob struct {
	name string
	runs int
	err  error
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func TestRegistrySkipsNilJobs(t *testing.T) {
	registry := NewRegistry(nil, &fakeJob{name: "a"}, nil)
	registry.Register(nil)
	registry.Register(&fakeJob{name: "b"})

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name() != "a" || jobs[1].Name() != "b" {
		t.Fatalf("unexpected order: %s, %s", jobs[0].Name(), jobs[1].Name())
	}
}

func TestRegistryJobsReturnsCopy(t *testing.T) {
	registry := NewRegistry(&fakeJob{name: "a"})
	jobs := registry.Jobs()
	jobs[0] = &fakeJob{name: "mutated"}

	if registry.Jobs()[0].Name() != "a" {
		t.Fatal("registry state mutated through returned slice")
	}
}
