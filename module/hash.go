package module

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// ContentHash returns a short hex digest of a module's source text,
// used by `clou modules stats` to show a per-module fingerprint. The
// loader does not compare it against cached modules.
func ContentHash(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:8])
}
