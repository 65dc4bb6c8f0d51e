// Package search holds the embedding contract and the exact vector index
// built from campground embeddings.
package search

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Index file layout, little-endian:
//
//	magic   [4]byte "CGIX"
//	version uint32
//	dim     uint32
//	n       uint32
//	n x { idLen uint32, id [idLen]byte, vector [dim]float32 }
const (
	indexMagic   = "CGIX"
	indexVersion = uint32(1)
	headerSize   = len(indexMagic) + 3*4
)

// Upper bounds accepted when reading an index.
const (
	MaxDimension = 1 << 16
	MaxIDLength  = 1 << 10
)

// Index errors.
var (
	ErrInvalidDimension  = errors.New("invalid index dimension")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrInvalidIndexFile  = errors.New("invalid index file")
)

// Match is one search hit.
type Match struct {
	ID       string
	Row      int
	Distance float32
}

// FlatIndex is an exact nearest-neighbour index over squared L2 distance.
// Rows keep insertion order and each row carries the ID it was added with.
type FlatIndex struct {
	dim  int
	ids  []string
	data []float32
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dim int) (*FlatIndex, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &FlatIndex{dim: dim}, nil
}

// Add appends a vector under id.
func (f *FlatIndex) Add(id string, vector []float32) error {
	if len(vector) != f.dim {
		return fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(vector), f.dim)
	}
	f.ids = append(f.ids, id)
	f.data = append(f.data, vector...)
	return nil
}

// Len returns the number of rows.
func (f *FlatIndex) Len() int { return len(f.ids) }

// Dimension returns the vector dimension.
func (f *FlatIndex) Dimension() int { return f.dim }

// IDs returns the row IDs in row order.
func (f *FlatIndex) IDs() []string {
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// Vector returns a copy of the vector stored at row.
func (f *FlatIndex) Vector(row int) []float32 {
	out := make([]float32, f.dim)
	copy(out, f.row(row))
	return out
}

// Search returns the k rows nearest to query, closest first.
// Equal distances keep row order. A k larger than Len returns every row.
func (f *FlatIndex) Search(query []float32, k int) ([]Match, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: got %d, index has %d", ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 || f.Len() == 0 {
		return []Match{}, nil
	}

	matches := make([]Match, f.Len())
	for i := range f.ids {
		matches[i] = Match{ID: f.ids[i], Row: i, Distance: squaredL2(query, f.row(i))}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// WriteTo serialises the index.
func (f *FlatIndex) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	if _, err := cw.Write([]byte(indexMagic)); err != nil {
		return cw.n, err
	}
	header := []uint32{indexVersion, uint32(f.dim), uint32(f.Len())}
	if err := binary.Write(cw, binary.LittleEndian, header); err != nil {
		return cw.n, err
	}
	for i, id := range f.ids {
		if err := binary.Write(cw, binary.LittleEndian, uint32(len(id))); err != nil {
			return cw.n, err
		}
		if _, err := io.WriteString(cw, id); err != nil {
			return cw.n, err
		}
		if err := binary.Write(cw, binary.LittleEndian, f.row(i)); err != nil {
			return cw.n, err
		}
	}
	return cw.n, bw.Flush()
}

// ReadFlatIndex parses an index written by WriteTo. Headers declaring a
// dimension above MaxDimension or IDs longer than MaxIDLength are rejected.
func ReadFlatIndex(r io.Reader) (*FlatIndex, error) {
	return readFlatIndex(r, -1)
}

// readFlatIndex parses an index. When size is not negative it is the total
// input length, and headers implying a larger payload are rejected before
// any row is read.
func readFlatIndex(r io.Reader, size int64) (*FlatIndex, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(indexMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: read magic: %v", ErrInvalidIndexFile, err)
	}
	if string(magic) != indexMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidIndexFile, magic)
	}

	var header [3]uint32
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidIndexFile, err)
	}
	version, dim, n := header[0], int(header[1]), int(header[2])
	if version != indexVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidIndexFile, version)
	}

	if dim > MaxDimension {
		return nil, fmt.Errorf("%w: dimension %d exceeds %d", ErrInvalidIndexFile, dim, MaxDimension)
	}
	if size >= 0 {
		// Each row holds at least its length prefix and dim float32s.
		minPayload := int64(n) * (4 + int64(dim)*4)
		if minPayload > size-int64(headerSize) {
			return nil, fmt.Errorf("%w: header declares %d rows of dimension %d, file has %d bytes",
				ErrInvalidIndexFile, n, dim, size)
		}
	}

	idx, err := NewFlatIndex(dim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndexFile, err)
	}

	vec := make([]float32, dim)
	for i := 0; i < n; i++ {
		var idLen uint32
		if err := binary.Read(br, binary.LittleEndian, &idLen); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidIndexFile, i, err)
		}
		if idLen > MaxIDLength {
			return nil, fmt.Errorf("%w: row %d id length %d exceeds %d", ErrInvalidIndexFile, i, idLen, MaxIDLength)
		}
		id := make([]byte, idLen)
		if _, err := io.ReadFull(br, id); err != nil {
			return nil, fmt.Errorf("%w: row %d id: %v", ErrInvalidIndexFile, i, err)
		}
		if err := binary.Read(br, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("%w: row %d vector: %v", ErrInvalidIndexFile, i, err)
		}
		if err := idx.Add(string(id), vec); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// WriteFile writes the index to path, replacing any existing file.
func (f *FlatIndex) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	if _, err := f.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write index file: %w", err)
	}
	return file.Close()
}

// ReadFlatIndexFile reads an index from path.
func ReadFlatIndexFile(path string) (*FlatIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat index file: %w", err)
	}
	return readFlatIndex(file, info.Size())
}

func (f *FlatIndex) row(i int) []float32 {
	return f.data[i*f.dim : (i+1)*f.dim]
}

func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	if math.IsNaN(sum) {
		return float32(math.Inf(1))
	}
	return float32(sum)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
