// Package gemini provides an implementation of the extraction.Completer
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture. It
// owns everything vendor specific: client construction, generation settings,
// request rate limiting, retries with exponential backoff and the translation
// of Gemini responses and failures into the extraction error taxonomy:
//
//   - network and API status failures wrap extraction.ErrRemoteTransport and
//     are retried while attempts remain
//   - empty or missing candidates and empty text wrap
//     extraction.ErrRemoteProtocol and are never retried
//   - safety refusals wrap extraction.ErrContentBlocked
//
// Prompt construction and response parsing live in the remote extraction
// package; this package only moves text in and out of the model.
package gemini
