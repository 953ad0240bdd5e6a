// Package mocks provides hand-written test doubles for the extraction ports.
//
// Each mock has function fields that override its behaviour, plain default
// return values used when no function is set, and mutex-guarded call
// tracking so tests running handlers concurrently can inspect what was
// called:
//
//	completer := &mocks.MockCompleter{
//	    CompleteFn: func(ctx context.Context, prompt string) (string, error) {
//	        return `[{"title":"Submit report"}]`, nil
//	    },
//	}
//
// Constructors such as MockCompleterWithTransportError cover the failure
// modes the orchestrator must recover from.
package mocks
