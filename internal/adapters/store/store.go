// Package store holds the VerdictRepository backends.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/mikey/smishguard/internal/core"
)

// ContentKey returns the hex sha256 of the exact message content
func ContentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func ensureID(v *core.Verdict) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
}

func clone(v *core.Verdict) *core.Verdict {
	c := *v
	return &c
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, core.ErrStore, err)
}
