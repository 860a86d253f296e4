package output

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// RenderPNG pipes dot source through the external graphviz binary and writes
// the rasterized image to w. A missing or failing binary surfaces as
// DotError.
func RenderPNG(dotSource []byte, w io.Writer) error {
	cmd := exec.Command("dot", "-Tpng")
	cmd.Stdin = bytes.NewReader(dotSource)
	cmd.Stdout = w

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			err = fmt.Errorf("%w: %s", err, stderr.String())
		}
		return entities.DotError{Cause: err}
	}
	return nil
}
