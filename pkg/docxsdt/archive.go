package docxsdt

import (
	"archive/zip"
	"bytes"
	"io"
)

// ReadBlobs is the Container I/O component (§4.A): it opens a .docx (or any
// OOXML package) as a ZIP archive and slurps every part into memory, keyed
// by its in-archive path, so the rest of the engine never has to think
// about the archive again.
func ReadBlobs(r io.ReaderAt, size int64) (map[string][]byte, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ArchiveError{Operation: "open", Cause: err}
	}

	blobs := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, &ArchiveError{Operation: "open part", Path: f.Name, Cause: err}
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, &ArchiveError{Operation: "read part", Path: f.Name, Cause: err}
		}
		blobs[f.Name] = data
	}
	return blobs, nil
}

// WriteBlobs is the inverse of ReadBlobs: it writes blobs back out as a ZIP
// archive, deflate-compressed, in the order given by names (callers should
// pass the original archive's part order so unrelated tooling that is
// sensitive to member order keeps working).
func WriteBlobs(w io.Writer, blobs map[string][]byte, names []string) error {
	zw := zip.NewWriter(w)

	for _, name := range names {
		data, ok := blobs[name]
		if !ok {
			continue
		}
		hdr := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		hdr.SetMode(0o755)
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return &ArchiveError{Operation: "create part", Path: name, Cause: err}
		}
		if _, err := fw.Write(data); err != nil {
			return &ArchiveError{Operation: "write part", Path: name, Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &ArchiveError{Operation: "close", Cause: err}
	}
	return nil
}

// ReadBlobsFromBytes is a convenience wrapper around ReadBlobs for callers
// that already hold the whole archive in memory.
func ReadBlobsFromBytes(data []byte) (map[string][]byte, error) {
	return ReadBlobs(bytes.NewReader(data), int64(len(data)))
}

// writeBlobsToBytes is a convenience wrapper around WriteBlobs for callers
// that want the finished archive as a single byte slice.
func writeBlobsToBytes(blobs map[string][]byte, names []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBlobs(&buf, blobs, names); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PartOrder returns the names of blobs in their original archive order, by
// re-reading the central directory — used so WriteBlobs can preserve
// member ordering after a round trip.
func PartOrder(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveError{Operation: "open", Cause: err}
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}
