package concurrency

import "github.com/openSVM/solisp-sub002/internal/errors"

func errAlreadyJoined(name string) error {
	return errors.New(errors.KindInvalidArguments, "thread %q has already been joined", name).WithTool("join-thread")
}

func errAlreadyAwaited(id string) error {
	return errors.New(errors.KindInvalidArguments, "async handle %q has already been consumed", id).WithTool("await")
}
