package images

import _ "embed"

// Embed the master artwork into the binary so -regen works without the
// assets directory checked out.
//go:embed pain.png
var PainMaster []byte

//go:embed lsp.png
var LSPMaster []byte

// Master returns the embedded artwork for an identity, or nil when the
// identity has none.
func Master(identity string) []byte {
	switch identity {
	case "pain":
		return PainMaster
	case "lsp":
		return LSPMaster
	}
	return nil
}
