// Package generation provides the core tweet-generation pipeline over an
// external LLM service: prompt construction, rate-limited and retried
// delivery through a Gateway, and defensive validation of the model's JSON
// output into domain objects. The Gateway interface abstracts the external
// API so the pipeline never couples to a specific provider's client.
package generation
