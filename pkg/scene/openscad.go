package scene

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/printforge/printboard/pkg/errors"
)

// RenderSTL compiles OpenSCAD source to STL by shelling out to openscad.
// A missing binary or a failed compile returns a renderer error; callers
// treat STL output as optional and keep the SCAD source either way.
func RenderSTL(scad string) ([]byte, error) {
	if _, err := exec.LookPath("openscad"); err != nil {
		return nil, errors.New(errors.ErrCodeRendererMissing,
			"STL export requires openscad on PATH")
	}

	dir, err := os.MkdirTemp("", "printboard-scad-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "board.scad")
	out := filepath.Join(dir, "board.stl")
	if err := os.WriteFile(in, []byte(scad), 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "write scad source")
	}

	cmd := exec.Command("openscad", "-o", out, in)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "openscad: %s", errBuf.String())
	}

	stl, err := os.ReadFile(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "read stl output")
	}
	return stl, nil
}
