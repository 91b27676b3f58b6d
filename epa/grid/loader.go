package grid

import (
	"fmt"
	"os"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/sirupsen/logrus"

	"github.com/twoparton/epagrid/epa"
)

// Load reads the grid file at path and returns its header and an initialised
// interpolation table.
//
// The magic number is always checked. When checkHeader is set, the header must
// also be compatible with expected; a failed check returns a *HeaderMismatchError.
// A file that cannot be opened yields an epa.ErrIO error; malformed contents
// yield epa.ErrValidation errors.
func Load(path string, expected Header, checkHeader bool) (table *Table, header Header, err error) {
	start := time.Now()
	defer func() {
		gridLoadsTotal.WithLabelValues(outcome(err)).Inc()
	}()

	data, closeFn, err := mapFile(path)
	if err != nil {
		return nil, Header{}, err
	}
	defer closeFn()

	if err := header.UnmarshalBinary(data); err != nil {
		return nil, Header{}, fmt.Errorf("reading grid %q: %w", path, err)
	}
	if !header.GoodMagic() || (checkHeader && !header.Compatible(expected)) {
		return nil, Header{}, &HeaderMismatchError{Path: path, Expected: expected, Retrieved: header}
	}

	body := data[HeaderSize:]
	if len(body)%ValueSize != 0 {
		return nil, Header{}, fmt.Errorf("%w: grid %q ends with a truncated record (%d trailing bytes)",
			epa.ErrValidation, path, len(body)%ValueSize)
	}
	table = NewTable(len(body) / ValueSize)
	for off := 0; off < len(body); off += ValueSize {
		v := decodeValue(body[off : off+ValueSize])
		if err := table.Insert(v.X, v.Y); err != nil {
			return nil, Header{}, err
		}
	}
	if err := table.Initialise(); err != nil {
		return nil, Header{}, fmt.Errorf("initialising grid %q: %w", path, err)
	}

	elapsed := time.Since(start)
	gridLoadDuration.Observe(elapsed.Seconds())
	gridSamples.Observe(float64(table.Len()))
	logrus.Infof("Two-parton flux grid evaluator built in %s from %q: %d points, w in range %v (version %q).",
		elapsed, path, table.Len(), table.Range(), header.Version)
	return table, header, nil
}

// ReadHeader returns the header of the grid file at path and the number of
// whole records following it. The magic number is not checked.
func ReadHeader(path string) (Header, int, error) {
	data, closeFn, err := mapFile(path)
	if err != nil {
		return Header{}, 0, err
	}
	defer closeFn()

	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return Header{}, 0, fmt.Errorf("reading grid %q: %w", path, err)
	}
	return h, (len(data) - HeaderSize) / ValueSize, nil
}

// mapFile maps path read-only. The returned function unmaps and closes it.
// Files too short to hold a header are rejected before mapping.
func mapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to load grid file %q: %v", epa.ErrIO, path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: stat grid file %q: %v", epa.ErrIO, path, err)
	}
	if st.Size() < HeaderSize {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %q is too short to be a grid file (%d bytes)", epa.ErrValidation, path, st.Size())
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: mapping grid file %q: %v", epa.ErrIO, path, err)
	}
	return m, func() {
		_ = m.Unmap()
		_ = f.Close()
	}, nil
}
