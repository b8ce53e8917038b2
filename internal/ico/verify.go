package ico

import (
	"bytes"
	"fmt"
	"os"

	// Specialized ICO decoder; handles PNG-compressed entries better than
	// image.Decode format sniffing.
	goico "github.com/sergeymakinen/go-ico"
)

// Verify decodes a packed container with an independent decoder and checks
// the result against the resolutions the container claims to hold.
func Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ico: %w", err)
	}
	entries, err := ParseDir(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	img, err := goico.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return fmt.Errorf("%s: decoded image is %dx%d, want square", path, b.Dx(), b.Dy())
	}
	for _, e := range entries {
		if e.Size == b.Dx() {
			return nil
		}
	}
	return fmt.Errorf("%s: decoded %dpx image not listed in container directory", path, b.Dx())
}
