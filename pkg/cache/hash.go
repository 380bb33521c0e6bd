package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactOpts are the render options that change an artifact's bytes.
type ArtifactOpts struct {
	Format   string
	View     string
	Detailed bool
	Scale    float64
}

// ArtifactKey returns the key for one rendered artifact of the placement
// whose JSON hashes to layoutHash.
//
//	artifact:<format>:<hash of layoutHash, view, detailed, scale>
func ArtifactKey(layoutHash string, opts ArtifactOpts) string {
	parts := layoutHash + "|" + opts.View + "|" + strconv.FormatBool(opts.Detailed) +
		"|" + strconv.FormatFloat(opts.Scale, 'g', -1, 64)
	return fmt.Sprintf("artifact:%s:%s", opts.Format, Hash([]byte(parts)))
}
