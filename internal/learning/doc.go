// Package learning holds the children's learning catalog (categories and
// their items, with Indonesian labels) and a best-effort fun-fact and
// speech generator backed by the Gemini REST API.
package learning
