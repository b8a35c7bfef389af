package depgraph

import (
	"os"

	"github.com/LegacyCodeHQ/requiregraph/depgraph/dialect"
)

// ContentReader reads a file's bytes. It lets callers substitute the
// filesystem, for tests or in-memory trees.
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader reads files from the local filesystem.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// SourceLoader reads a source file and preprocesses it when its dialect
// requires a compile step.
type SourceLoader struct {
	readFile ContentReader
	dialects *dialect.Registry
}

// NewSourceLoader returns a loader. Nil arguments select the filesystem
// reader and the default dialects.
func NewSourceLoader(readFile ContentReader, dialects *dialect.Registry) SourceLoader {
	if readFile == nil {
		readFile = FilesystemContentReader()
	}
	if dialects == nil {
		dialects = dialect.DefaultRegistry()
	}
	return SourceLoader{readFile: readFile, dialects: dialects}
}

// Load returns the scan-ready text of filename. Read failures are marked
// ErrRead and compile failures ErrPreprocess.
func (l SourceLoader) Load(filename string) (string, error) {
	raw, err := l.readFile(filename)
	if err != nil {
		return "", newReadError(filename, err)
	}

	source := string(raw)
	d, ok := l.dialects.ForFile(filename)
	if !ok || !d.NeedsPreprocessing() {
		return source, nil
	}

	compiled, err := d.Compile(filename, source)
	if err != nil {
		return "", newPreprocessError(filename, err)
	}
	return compiled, nil
}
