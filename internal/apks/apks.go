// Package apks unpacks the .apks archives bundletool produces.
//
// An .apks file is a zip holding split or universal APKs plus a toc.pb
// table of contents. Extract copies the entries that match the include
// patterns next to the archive, records a BLAKE3 digest for each one and
// can remove the archive afterwards.
package apks

import (
	"context"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"

	e "bundlekit/pkg/errors"
	"bundlekit/pkg/logger"
)

// DefaultInclude selects every APK at any depth plus the table of contents.
var DefaultInclude = []string{"**.apk", "toc.pb"}

// Options controls Extract.
type Options struct {
	// Include holds glob patterns matched against entry names; nil means
	// DefaultInclude.
	Include []string
	// RemoveArchive deletes the archive after a successful extraction.
	RemoveArchive bool
	// Progress is called after each extracted entry.
	Progress func(done, total int)
}

// File is one extracted entry.
type File struct {
	Name   string
	Size   int64
	Digest string
}

// Report describes a finished extraction.
type Report struct {
	Dir   string
	Files []File
}

// TotalSize sums the extracted file sizes.
func (r Report) TotalSize() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Size
	}
	return n
}

// Summary renders one line per file followed by a total.
func (r Report) Summary() string {
	var sb strings.Builder
	for _, f := range r.Files {
		digest := f.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(&sb, "  %-40s %10d  %s\n", f.Name, f.Size, digest)
	}
	fmt.Fprintf(&sb, "%d file(s), %d bytes in %s", len(r.Files), r.TotalSize(), r.Dir)
	return sb.String()
}

// Extract unpacks archive into dest. Cancelling ctx stops it between
// entries and leaves the archive in place, as does an archive with no
// matching entries.
func Extract(ctx context.Context, archive, dest string, opts Options) (Report, error) {
	report := Report{Dir: dest}

	patterns := opts.Include
	if patterns == nil {
		patterns = DefaultInclude
	}
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return report, e.Wrap(err, e.ErrInvalidConfig, fmt.Sprintf("Invalid include pattern %q", p))
		}
		matchers = append(matchers, g)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return report, openError(err, archive)
	}

	var selected []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !matchesAny(matchers, f.Name) {
			continue
		}
		selected = append(selected, f)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Name < selected[j].Name })
	if len(selected) == 0 {
		r.Close()
		return report, e.New(e.ErrArchiveCorrupt, "Archive has no matching entries").
			WithContext("path", archive).
			WithContext("include", strings.Join(patterns, ","))
	}

	logger.StartTimer("unpack " + filepath.Base(archive))
	for i, f := range selected {
		if err := ctx.Err(); err != nil {
			r.Close()
			return report, e.New(e.ErrCancelled, "Unpacking was cancelled").
				WithCause(err).
				WithContext("path", archive)
		}
		file, err := extractEntry(f, dest)
		if err != nil {
			r.Close()
			return report, err
		}
		report.Files = append(report.Files, file)
		if opts.Progress != nil {
			opts.Progress(i+1, len(selected))
		}
	}
	logger.EndTimer("unpack " + filepath.Base(archive))

	if err := r.Close(); err != nil {
		return report, e.Wrap(err, e.ErrArchiveCorrupt, "Cannot close archive").WithContext("path", archive)
	}
	if opts.RemoveArchive {
		if err := os.Remove(archive); err != nil {
			return report, e.Wrap(err, e.ErrPermissionDenied, "Extracted, but cannot remove archive").
				WithContext("path", archive)
		}
		logger.Verbosef("removed %s", archive)
	}
	return report, nil
}

func matchesAny(matchers []glob.Glob, name string) bool {
	for _, g := range matchers {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// safeJoin resolves name under dest and rejects entries that would escape
// it through absolute paths or "..".
func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("absolute entry name %q", name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}

func extractEntry(f *zip.File, dest string) (File, error) {
	target, err := safeJoin(dest, f.Name)
	if err != nil {
		return File{}, e.Wrap(err, e.ErrArchiveCorrupt, "Refusing unsafe archive entry").WithContext("entry", f.Name)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return File{}, e.Wrap(err, e.ErrPermissionDenied, "Cannot create output directory").WithContext("path", filepath.Dir(target))
	}

	src, err := f.Open()
	if err != nil {
		return File{}, e.Wrap(err, e.ErrArchiveCorrupt, "Cannot read archive entry").WithContext("entry", f.Name)
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return File{}, e.Wrap(err, e.ErrPermissionDenied, "Cannot write extracted file").WithContext("path", target)
	}

	h := blake3.New()
	n, err := io.Copy(io.MultiWriter(out, h), src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return File{}, e.Wrap(err, e.ErrArchiveCorrupt, "Cannot extract archive entry").WithContext("entry", f.Name)
	}

	logger.Debugf("extracted %s (%d bytes)", f.Name, n)
	return File{Name: f.Name, Size: n, Digest: hex.EncodeToString(h.Sum(nil))}, nil
}

func openError(err error, archive string) error {
	switch {
	case stderrors.Is(err, os.ErrNotExist):
		return e.Wrap(err, e.ErrFileNotFound, "Archive not found").WithContext("path", archive)
	case stderrors.Is(err, os.ErrPermission):
		return e.Wrap(err, e.ErrPermissionDenied, "Cannot open archive").WithContext("path", archive)
	}
	return e.Wrap(err, e.ErrArchiveCorrupt, "Archive is not a valid zip").WithContext("path", archive)
}
