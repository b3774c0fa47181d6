package catalog

import (
	"context"
	"log"
)

// Provider generates tool descriptors for one backend category.
type Provider interface {
	Name() string
	Generate(ctx context.Context) (map[string]*Tool, error)
}

// Load returns the catalog for a provider: persisted descriptors when
// present, otherwise freshly generated ones (which are then persisted).
// Generation failure degrades to a web-search-only catalog rather than
// failing startup.
func Load(ctx context.Context, store *Store, p Provider) *Catalog {
	tools, err := store.Load(p.Name())
	if err != nil {
		log.Printf("catalog [%s]: load cache: %v", p.Name(), err)
	}
	if len(tools) > 0 {
		log.Printf("catalog [%s]: loaded %d tools from cache", p.Name(), len(tools))
		return New(tools)
	}

	tools, err = p.Generate(ctx)
	if err != nil {
		log.Printf("catalog [%s]: generate: %v (degrading to web search only)", p.Name(), err)
		return New(nil)
	}

	if len(tools) > 0 {
		if err := store.Save(p.Name(), tools); err != nil {
			log.Printf("catalog [%s]: persist: %v", p.Name(), err)
		}
	}
	log.Printf("catalog [%s]: generated %d tools", p.Name(), len(tools))
	return New(tools)
}
