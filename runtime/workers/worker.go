// Package workers holds the background processes of the chat room and the
// supervisor that keeps them alive.
package workers

import (
	"context"
	"reflect"
)

// Worker doesn't protect itself. The supervisor handles panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// Name uses reflection to retrieve the type name of the worker, for logging
// and supervision, avoiding manual naming in the Worker interface.
func Name(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
