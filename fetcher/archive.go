// fetcher/archive.go
package fetcher

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
)

// ExtractMember returns the contents of one CSV member of a zip archive.
// With an empty memberName the archive must contain exactly one file; a named
// member that is absent is a fatal error for the ingestion run, surfaced to
// the task runner rather than retried here.
func ExtractMember(archive []byte, memberName string) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	var target *zip.File
	if memberName == "" {
		if len(reader.File) != 1 {
			return nil, fmt.Errorf("archive has %d members; a member name is required", len(reader.File))
		}
		target = reader.File[0]
	} else {
		for _, f := range reader.File {
			if f.Name == memberName {
				target = f
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("member %q not found in archive", memberName)
		}
	}

	rc, err := target.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archive member %s: %w", target.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive member %s: %w", target.Name, err)
	}

	log.Printf("Fetcher: extracted %s (%d bytes) from archive.\n", target.Name, len(data))
	return data, nil
}
