// Package models holds the static registry of Groq models the service
// accepts. The registry is built once at startup and never mutated, so
// it is safe for concurrent reads without locking.
package models

// Descriptor describes a single supported model. MaxTokens is the
// model's own context ceiling and Recommended is display metadata; the
// request validator does not enforce either.
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxTokens   int    `json:"max_tokens"`
	Recommended bool   `json:"recommended"`
}

// Registry is an ordered, immutable set of model descriptors.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// New creates a Registry from the given descriptors, preserving their
// order. Duplicate IDs keep the first occurrence.
func New(descriptors ...Descriptor) *Registry {
	r := &Registry{
		byID: make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, exists := r.byID[d.ID]; exists {
			continue
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r
}

// Builtin returns the registry of Groq models this service supports.
func Builtin() *Registry {
	return New(
		Descriptor{
			ID:          "llama-3.1-8b-instant",
			Name:        "LLaMA3 8B",
			Description: "Fast and efficient model for general conversations",
			MaxTokens:   8192,
			Recommended: true,
		},
		Descriptor{
			ID:          "llama3-70b-8192",
			Name:        "LLaMA3 70B",
			Description: "More powerful model for complex tasks",
			MaxTokens:   8192,
		},
		Descriptor{
			ID:          "mixtral-8x7b-32768",
			Name:        "Mixtral 8x7B",
			Description: "High-performance mixture of experts model",
			MaxTokens:   32768,
			Recommended: true,
		},
		Descriptor{
			ID:          "gemma-7b-it",
			Name:        "Gemma 7B",
			Description: "Google's Gemma model for instruction following",
			MaxTokens:   8192,
		},
	)
}

// List returns the descriptors in their fixed registration order.
// The returned slice is a copy; callers may not mutate the registry.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Describe returns the descriptor for the given model ID.
func (r *Registry) Describe(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Contains reports whether the given model ID is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}
