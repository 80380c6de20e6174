package container

import (
	"os"
	"path/filepath"
)

// ExtractAll writes every entry to dir, preserving entry order, creating
// parent directories as needed. Individual-entry failures do not abort the
// walk; if any occurred, the aggregate is returned as *PartialExtraction
// after every entry has been attempted.
func (r *Reader) ExtractAll(dir string) error {
	var failures []EntryFailure

	for i := range r.entries {
		if err := r.extractOneTo(dir, i); err != nil {
			failures = append(failures, EntryFailure{Name: r.entries[i].Name, Err: err})
		}
	}

	if len(failures) > 0 {
		return &PartialExtraction{Failures: failures}
	}
	return nil
}

// extractOneTo writes entry i's raw bytes (not SNG-wrapper-stripped;
// ExtractAll reproduces the on-disk layout, not a converted one) under dir.
func (r *Reader) extractOneTo(dir string, i int) error {
	data, err := r.extractRaw(i)
	if err != nil {
		return err
	}

	outPath := filepath.Join(dir, filepath.FromSlash(r.entries[i].Name))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &WriteFailed{Path: outPath, Err: err}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &WriteFailed{Path: outPath, Err: err}
	}
	return nil
}

// ExtractFileTo extracts a single named entry (through the SNG-path
// post-processing step, same as ExtractByName) and writes it to outPath.
func (r *Reader) ExtractFileTo(name, outPath string) error {
	data, err := r.ExtractByName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &WriteFailed{Path: outPath, Err: err}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &WriteFailed{Path: outPath, Err: err}
	}
	return nil
}
