package grid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/twoparton/epagrid/epa"
)

const (
	// Magic identifies a flux grid file. It is stored as the first four bytes.
	Magic uint32 = 0xdeadb33f
	// Version is the producing tool tag written into new grid headers.
	Version = "epagrid-1"

	// HeaderSize is the on-disk size of a grid header, in bytes.
	HeaderSize = 64
	// ValueSize is the on-disk size of one grid sample, in bytes.
	ValueSize = 16

	versionSize = 10
)

// byteOrder is fixed for portability between producer and consumer builds.
var byteOrder = binary.LittleEndian

// Header is the metadata record written once at the start of a grid file.
// It ties the tabulated values to the kinematics they were computed for.
type Header struct {
	Magic       uint32
	Version     string // informational, never compared
	Eb1, Eb2    float64
	Q2Max1      float64
	Q2Max2      float64
	Fragmenting bool
	Partons     [2]int32
}

// diskHeader is the exact 64-byte layout of a header on disk: little-endian,
// with explicit padding so that it matches the natural x86-64 layout of the
// parton-pair revision.
type diskHeader struct {
	Magic       uint32
	Version     [versionSize]byte
	_           [2]byte
	Eb1         float64
	Eb2         float64
	Q2Max1      float64
	Q2Max2      float64
	Fragmenting bool
	_           [3]byte
	Partons     [2]int32
	_           [4]byte
}

// HeaderFromModule builds the header expected for the run configured by m.
// The magic number is set to the sentinel and the version to the current tag.
func HeaderFromModule(m epa.Module) (Header, error) {
	r := m.Reader()
	h := Header{
		Magic:       Magic,
		Version:     Version,
		Eb1:         r.Float("eb1", 0),
		Eb2:         r.Float("eb2", 0),
		Q2Max1:      r.Float("q2max1", 0),
		Q2Max2:      r.Float("q2max2", 0),
		Fragmenting: r.Bool("fragmenting", false),
	}
	partons := r.Ints("partons", []int{epa.PhotonPDG, epa.PhotonPDG})
	if err := r.Err(); err != nil {
		return Header{}, err
	}
	if len(partons) != 2 {
		return Header{}, fmt.Errorf("%w: expected two parton identifiers, got %v", epa.ErrConfiguration, partons)
	}
	for i, id := range partons {
		if id < math.MinInt32 || id > math.MaxInt32 {
			return Header{}, fmt.Errorf("%w: parton identifier %d out of range", epa.ErrConfiguration, id)
		}
		h.Partons[i] = int32(id)
	}
	return h, nil
}

// GoodMagic reports whether the header carries the grid sentinel.
func (h Header) GoodMagic() bool { return h.Magic == Magic }

// Compatible reports whether h and o describe the same run kinematics.
// The tool version and the magic number are not compared.
func (h Header) Compatible(o Header) bool {
	return h.Eb1 == o.Eb1 && h.Eb2 == o.Eb2 &&
		h.Q2Max1 == o.Q2Max1 && h.Q2Max2 == o.Q2Max2 &&
		h.Fragmenting == o.Fragmenting && h.Partons == o.Partons
}

func (h Header) String() string {
	return fmt.Sprintf("grid.Header{eb1:%g, eb2:%g, q2max1:%g, q2max2:%g, fragmenting:%t, partons:(%d, %d), version:%q}",
		h.Eb1, h.Eb2, h.Q2Max1, h.Q2Max2, h.Fragmenting, h.Partons[0], h.Partons[1], h.Version)
}

// MarshalBinary encodes the header into its 64-byte on-disk form.
// Versions longer than ten bytes are truncated.
func (h Header) MarshalBinary() ([]byte, error) {
	d := diskHeader{
		Magic:       h.Magic,
		Eb1:         h.Eb1,
		Eb2:         h.Eb2,
		Q2Max1:      h.Q2Max1,
		Q2Max2:      h.Q2Max2,
		Fragmenting: h.Fragmenting,
		Partons:     h.Partons,
	}
	copy(d.Version[:], h.Version)
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, byteOrder, &d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a header from the first HeaderSize bytes of data.
// It does not check the magic number.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: grid header needs %d bytes, got %d", epa.ErrValidation, HeaderSize, len(data))
	}
	var d diskHeader
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), byteOrder, &d); err != nil {
		return fmt.Errorf("%w: decoding grid header: %v", epa.ErrValidation, err)
	}
	*h = Header{
		Magic:       d.Magic,
		Version:     string(bytes.TrimRight(d.Version[:], "\x00")),
		Eb1:         d.Eb1,
		Eb2:         d.Eb2,
		Q2Max1:      d.Q2Max1,
		Q2Max2:      d.Q2Max2,
		Fragmenting: d.Fragmenting,
		Partons:     d.Partons,
	}
	return nil
}

// Value is one tabulated sample: the flux Y at invariant mass X.
type Value struct {
	X, Y float64
}

func appendValue(dst []byte, v Value) []byte {
	dst = byteOrder.AppendUint64(dst, math.Float64bits(v.X))
	return byteOrder.AppendUint64(dst, math.Float64bits(v.Y))
}

func decodeValue(src []byte) Value {
	return Value{
		X: math.Float64frombits(byteOrder.Uint64(src[0:8])),
		Y: math.Float64frombits(byteOrder.Uint64(src[8:16])),
	}
}

// HeaderMismatchError reports a grid file whose header is not a valid grid
// header, or does not describe the expected run.
type HeaderMismatchError struct {
	Path      string
	Expected  Header
	Retrieved Header
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("invalid grid read from %q\n   expected header: %v\n  retrieved header: %v\n      magic number: 0x%x",
		e.Path, e.Expected, e.Retrieved, e.Retrieved.Magic)
}

func (e *HeaderMismatchError) Unwrap() error { return epa.ErrValidation }
