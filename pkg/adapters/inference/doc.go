// Package inference provides question-answering engine implementations.
//
// The factory creates an engine based on provider configuration:
//   - lexical: in-process extractive baseline, no credentials needed
//   - anthropic: Claude extracts the answer span
//   - openai: GPT extracts the answer span
//
// Engines are built once at startup and shared by all requests.
package inference
