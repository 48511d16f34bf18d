// Package qa implements the question-answering request pipeline.
//
// The service answers an inquiry by:
//   - Consulting the answer cache, when one is configured
//   - Submitting a single-query inference batch to the offload pool
//   - Awaiting the result without tying up the pool's workers
//   - Mapping the result to an Answered, NoAnswer or Failed outcome
//
// The validator enforces the optional inquiry size limits.
package qa
