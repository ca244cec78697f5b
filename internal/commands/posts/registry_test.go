package postscmd

import (
	"testing"

	command "github.com/goliatone/go-command"
)

type stubRegistry struct {
	registered []any
	err        error
}

func (r *stubRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.registered = append(r.registered, handler)
	return nil
}

func TestRegisterPostsCommands(t *testing.T) {
	reg := &stubRegistry{}
	factory := corpusFactory(&stubCorpus{}, nil)

	set, err := RegisterPostsCommands(reg, factory, newStubRepo(), nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterPostsCommands() error = %v", err)
	}
	if set.Validate == nil || set.Archive == nil {
		t.Fatalf("RegisterPostsCommands() returned incomplete set %+v", set)
	}
	if len(reg.registered) != 2 {
		t.Fatalf("registered %d handlers, want 2", len(reg.registered))
	}
}

func TestRegisterPostsCommandsWithoutRepository(t *testing.T) {
	reg := &stubRegistry{}
	factory := corpusFactory(&stubCorpus{}, nil)

	set, err := RegisterPostsCommands(reg, factory, nil, nil, FeatureGates{})
	if err != nil {
		t.Fatalf("RegisterPostsCommands() error = %v", err)
	}
	if set.Archive != nil {
		t.Fatal("expected no archive handler without repository")
	}
	if len(reg.registered) != 1 {
		t.Fatalf("registered %d handlers, want 1", len(reg.registered))
	}
}

func TestRegisterPostsCommandsRequiresFactory(t *testing.T) {
	if _, err := RegisterPostsCommands(&stubRegistry{}, nil, nil, nil, FeatureGates{}); err == nil {
		t.Fatal("expected error when corpus factory missing")
	}
}

func TestRegisterArchiveCron(t *testing.T) {
	corpus := &stubCorpus{}
	handler := NewArchiveDirectoryHandler(corpusFactory(corpus, nil), newStubRepo(), nil, FeatureGates{})

	var registered bool
	reg := CronRegistrar(func(cfg command.HandlerConfig, fn any) error {
		registered = true
		run, ok := fn.(func() error)
		if !ok {
			t.Fatalf("cron payload type %T", fn)
		}
		return run()
	})

	err := RegisterArchiveCron(reg, handler, command.HandlerConfig{}, ArchiveDirectoryCommand{Directory: "content"})
	if err != nil {
		t.Fatalf("RegisterArchiveCron() error = %v", err)
	}
	if !registered {
		t.Fatal("expected cron registration")
	}
	if !corpus.reloaded {
		t.Fatal("expected cron run to reload corpus")
	}

	if err := RegisterArchiveCron(nil, nil, command.HandlerConfig{}, ArchiveDirectoryCommand{}); err != nil {
		t.Fatalf("RegisterArchiveCron() nil args error = %v", err)
	}
}
