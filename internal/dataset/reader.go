package dataset

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reader decodes one tabular file format into a Dataset.
type Reader interface {
	CanRead(filename string) bool
	Read(data []byte) (*Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry. Readers registered
// first win when more than one claims a filename.
func Register(r Reader) {
	registry = append(registry, r)
}

// UploadLimit caps the number of bytes Load will consume. Zero means unlimited.
var UploadLimit int64 = 200 << 20

// Load reads an uploaded file and dispatches on its extension. On failure it
// returns an empty, non-nil Dataset together with a *LoadError so callers can
// surface the message and keep going.
func Load(filename string, r io.Reader) (*Dataset, error) {
	empty := &Dataset{Source: SourceUpload, Filename: filepath.Base(filename)}
	data, err := readLimited(r)
	if err != nil {
		return empty, &LoadError{Source: empty.Filename, Err: err}
	}
	ds, err := decode(filename, data)
	if err != nil {
		return empty, &LoadError{Source: empty.Filename, Err: err}
	}
	ds.Source = SourceUpload
	ds.Filename = empty.Filename
	return ds, nil
}

func decode(filename string, data []byte) (ds *Dataset, err error) {
	// Third-party spreadsheet decoders may panic on corrupt input.
	defer func() {
		if rec := recover(); rec != nil {
			ds, err = nil, fmt.Errorf("malformed file: %v", rec)
		}
	}()
	for _, rd := range registry {
		if rd.CanRead(filename) {
			ds, err = rd.Read(data)
			break
		}
	}
	if ds == nil && err == nil {
		// anything else is tried as a spreadsheet, sniffing the zip magic of OOXML
		if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
			ds, err = xlsxReader{}.Read(data)
		} else {
			ds, err = xlsReader{}.Read(data)
		}
	}
	if err != nil {
		return nil, err
	}
	if ds == nil || len(ds.Columns) == 0 {
		return nil, ErrNoData
	}
	return ds, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no file provided")
	}
	if UploadLimit <= 0 {
		return io.ReadAll(r)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, UploadLimit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n > UploadLimit {
		return nil, fmt.Errorf("%w (%d MB)", ErrTooLarge, UploadLimit>>20)
	}
	return buf.Bytes(), nil
}

func hasExt(filename string, exts ...string) bool {
	name := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// SupportedExtensions lists the upload formats accepted by Load.
func SupportedExtensions() []string {
	return []string{".csv", ".xlsx", ".xls"}
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
	Register(xlsReader{})
}
