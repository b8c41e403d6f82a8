// Package draft persists the in-progress form profile in a key-value store.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/store"
)

// Key is the fixed key the draft is stored under.
const Key = "financialFormData"

// Draft reads and writes the whole profile as one JSON document.
type Draft struct {
	kv  store.KV
	key string
}

// New binds a Draft to kv under Key.
func New(kv store.KV) *Draft {
	return &Draft{kv: kv, key: Key}
}

// Load returns the stored profile. ok is false when nothing is stored.
func (d *Draft) Load(ctx context.Context) (profile.Profile, bool, error) {
	raw, ok, err := d.kv.Get(ctx, d.key)
	if err != nil || !ok {
		return profile.Profile{}, false, err
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return profile.Profile{}, false, fmt.Errorf("draft: parsing stored profile: %w", err)
	}
	return p, true, nil
}

// Save replaces the stored profile with p.
func (d *Draft) Save(ctx context.Context, p profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("draft: encoding profile: %w", err)
	}
	return d.kv.Put(ctx, d.key, string(data))
}

// SavedAt returns when the profile was last saved. ok is false when nothing
// is stored.
func (d *Draft) SavedAt(ctx context.Context) (time.Time, bool, error) {
	return d.kv.UpdatedAt(ctx, d.key)
}

// Clear removes the stored profile.
func (d *Draft) Clear(ctx context.Context) error {
	return d.kv.Delete(ctx, d.key)
}
