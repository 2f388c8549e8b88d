package tools

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Binary names resolved on PATH.
const (
	binMogrify   = "mogrify"
	binJpegoptim = "jpegoptim"
	binOptipng   = "optipng"
	binGifsicle  = "gifsicle"
)

// Sentinel errors returned by CheckDeps when a required binary is missing.
var (
	ErrMogrifyNotFound   = errors.New("mogrify not found on PATH (install ImageMagick)")
	ErrJpegoptimNotFound = errors.New("jpegoptim not found on PATH")
	ErrOptipngNotFound   = errors.New("optipng not found on PATH")
	ErrGifsicleNotFound  = errors.New("gifsicle not found on PATH")
)

// CheckDeps verifies every required codec binary is present before any
// file is touched. Missing binaries are fatal for the run.
func CheckDeps() error {
	checks := []struct {
		bin string
		err error
	}{
		{binMogrify, ErrMogrifyNotFound},
		{binJpegoptim, ErrJpegoptimNotFound},
		{binOptipng, ErrOptipngNotFound},
		{binGifsicle, ErrGifsicleNotFound},
	}
	for _, c := range checks {
		if _, err := exec.LookPath(c.bin); err != nil {
			return c.err
		}
	}
	return nil
}

// ToolStatus describes one binary for the check command.
type ToolStatus struct {
	Name    string
	Found   bool
	Version string
}

// versionArgs maps each binary to the argument that makes it print a
// version banner on stdout.
var versionArgs = map[string]string{
	binMogrify:   "-version",
	binJpegoptim: "--version",
	binOptipng:   "--version",
	binGifsicle:  "--version",
}

// Report probes every required binary and returns its status. It is
// informational only and never fails.
func Report() []ToolStatus {
	statuses := make([]ToolStatus, 0, len(versionArgs))
	for _, bin := range []string{binMogrify, binJpegoptim, binOptipng, binGifsicle} {
		st := ToolStatus{Name: bin}
		if _, err := exec.LookPath(bin); err == nil {
			st.Found = true
			st.Version = queryVersion(bin, versionArgs[bin])
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func queryVersion(bin, arg string) string {
	out, err := exec.Command(bin, arg).Output()
	if err != nil {
		return ""
	}
	return firstLine(string(out))
}

// WriteReport renders the tool report as plain lines, one per binary.
func WriteReport(w io.Writer, statuses []ToolStatus) {
	for _, st := range statuses {
		if !st.Found {
			fmt.Fprintf(w, "%-10s MISSING\n", st.Name)
			continue
		}
		version := st.Version
		if version == "" {
			version = "found"
		}
		fmt.Fprintf(w, "%-10s %s\n", st.Name, strings.TrimSpace(version))
	}
}
