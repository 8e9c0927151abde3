// Package aiengine provides LLM-backed generation for the calendar
// pipeline via langchaingo.
//
// The engine talks to any OpenAI-compatible chat endpoint and is opaque to
// its callers: steps hand it a prompt and the set of keys the response must
// contain, and get back a decoded JSON object or an error. Rate limiting
// and per-call timeouts live here, not in the orchestrator.
package aiengine
