// Package iconset discovers the per-resolution PNG sources for the pain
// compiler and language-server icon identities and validates them against
// the naming convention.
package iconset

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// IdentityCompiler is the primary application icon (the pain compiler).
	IdentityCompiler = "pain"
	// IdentityLSP is the auxiliary tool icon (the language server).
	IdentityLSP = "lsp"
)

// Identities lists every icon identity the repository ships, in the order
// they are converted.
var Identities = []string{IdentityCompiler, IdentityLSP}

// Resolutions is the conventional resolution set a complete identity carries.
// A source directory may hold any subset; only an empty set is an error.
var Resolutions = []int{16, 32, 48, 64, 128, 256, 512}

// Entry is one resolution of an icon set together with its raw PNG bytes.
type Entry struct {
	Size int
	Data []byte
}

// Set is the ordered (ascending by size) collection of sources found for one
// identity. Sets are read-only once scanned.
type Set struct {
	Identity string
	Entries  []Entry
}

// Sizes returns the resolutions present in the set, ascending.
func (s *Set) Sizes() []int {
	sizes := make([]int, len(s.Entries))
	for i, e := range s.Entries {
		sizes[i] = e.Size
	}
	return sizes
}

// Lookup returns the PNG bytes for a resolution, if present.
func (s *Set) Lookup(size int) ([]byte, bool) {
	for _, e := range s.Entries {
		if e.Size == size {
			return e.Data, true
		}
	}
	return nil, false
}

// MissingSourceError reports an identity with no source images at all. It is
// fatal: the whole conversion run aborts before any output is written.
type MissingSourceError struct {
	Identity string
	Dir      string
}

func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("no source images for identity %q in %s", e.Identity, e.Dir)
}

// FileName returns the conventional source file name for an identity at a
// resolution, e.g. "lsp-256.png".
func FileName(identity string, size int) string {
	return fmt.Sprintf("%s-%d.png", identity, size)
}

// Scan collects every conventional resolution present in dir for the given
// identity. Absent resolutions are skipped; a file whose pixel dimensions
// disagree with its declared resolution fails the scan. An identity with zero
// sources yields a MissingSourceError.
func Scan(dir, identity string) (*Set, error) {
	set := &Set{Identity: identity}
	for _, size := range Resolutions {
		path := filepath.Join(dir, FileName(identity, size))
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		if err := validate(data, size); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		set.Entries = append(set.Entries, Entry{Size: size, Data: data})
	}
	if len(set.Entries) == 0 {
		return nil, &MissingSourceError{Identity: identity, Dir: dir}
	}
	return set, nil
}

// validate checks the PNG header against the filename-declared resolution.
// Both container formats trust embedded dimensions, so a mismatch here is the
// only point where the mistake is attributable; fail hard.
func validate(data []byte, size int) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode png header: %w", err)
	}
	if cfg.Width != size || cfg.Height != size {
		return fmt.Errorf("image is %dx%d, declared resolution is %d", cfg.Width, cfg.Height, size)
	}
	return nil
}
