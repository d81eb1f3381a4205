// Package translation turns free-form Vietnamese or German text into a
// translation, a cultural note written in Vietnamese and a glossary of the
// German terms that note refers to. It builds the prompt and output schema,
// calls a generative Backend under a retry policy and normalizes the reply.
package translation
