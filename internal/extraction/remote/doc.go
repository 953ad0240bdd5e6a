// Package remote implements the language-model extraction engine.
//
// The Client renders a prompt from a text/template, sends it through an
// extraction.Completer and parses the model's JSON answer into tasks. When
// the answer is not the expected JSON, the raw answer is handed to the
// local engine as if it were the original input.
package remote
