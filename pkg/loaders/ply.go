// Package loaders reads external assets: PLY triangle meshes and image
// textures.
package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/log"
)

var logger = log.New("loaders")

// maxPrealloc caps slice capacity taken from header counts; a header can
// declare far more elements than the file holds
const maxPrealloc = 1 << 16

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block, e.g. "vertex" or "face"
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type of a list
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYData contains the raw data loaded from a PLY file. Optional per-vertex
// attributes are empty unless every component is present in the file.
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle)
	Normals   []core.Vec3 // Per-vertex normals (nx, ny, nz)
	Colors    []core.Vec3 // Per-vertex colors normalized to [0,1]
	TexCoords []core.Vec2 // Per-vertex texture coordinates (u, v)
}

// TriangleCount returns the number of triangles
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file and returns the raw vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("Loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	return data, nil
}

// ReadPLY decodes PLY data in ascii or binary (either byte order) format.
// Polygons with more than three vertices are split into triangle fans.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	for i, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("face %d references vertex %d of %d", i/3, index, len(data.Vertices))
		}
	}
	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("unexpected header line: %q", strings.TrimSpace(line))
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if typeSize(prop.ListType) == 0 || typeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown type in list property %s", prop.Name)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if typeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown type %q for property %s", prop.Type, prop.Name)
	}
	return prop, nil
}

// typeSize returns the binary size of a PLY scalar type, or 0 if unknown
func typeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

func isFloatType(dataType string) bool {
	switch dataType {
	case "float", "float32", "double", "float64":
		return true
	}
	return false
}

func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	index := make(map[string]int, len(element.Properties))
	for i, prop := range element.Properties {
		index[prop.Name] = i
	}
	lookup := func(names ...string) (int, bool) {
		for _, name := range names {
			if i, ok := index[name]; ok {
				return i, true
			}
		}
		return -1, false
	}

	x, hasX := lookup("x")
	y, hasY := lookup("y")
	z, hasZ := lookup("z")
	if !hasX || !hasY || !hasZ {
		return fmt.Errorf("vertex element needs x, y and z properties")
	}
	nx, hasNX := lookup("nx")
	ny, hasNY := lookup("ny")
	nz, hasNZ := lookup("nz")
	hasNormals := hasNX && hasNY && hasNZ
	red, hasR := lookup("red", "r")
	green, hasG := lookup("green", "g")
	blue, hasB := lookup("blue", "b")
	hasColors := hasR && hasG && hasB
	u, hasU := lookup("u", "s", "texture_u")
	v, hasV := lookup("v", "t", "texture_v")
	hasTexCoords := hasU && hasV

	// Integer colors are 0-255
	colorRange := 1.0
	if hasColors && !isFloatType(element.Properties[red].Type) {
		colorRange = 255
	}

	data.Vertices = make([]core.Vec3, 0, min(element.Count, maxPrealloc))
	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			row[j] = value
		}

		data.Vertices = append(data.Vertices, core.NewVec3(row[x], row[y], row[z]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(row[nx], row[ny], row[nz]))
		}
		if hasColors {
			data.Colors = append(data.Colors, core.NewVec3(row[red]/colorRange, row[green]/colorRange, row[blue]/colorRange))
		}
		if hasTexCoords {
			data.TexCoords = append(data.TexCoords, core.NewVec2(row[u], row[v]))
		}
	}
	return nil
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, 3*min(element.Count, maxPrealloc))
	var polygon []int

	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			isIndices := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			if !isIndices {
				if err := skipProperty(values, prop); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if count < 3 {
				return fmt.Errorf("face %d has %d vertices", i, int(count))
			}

			polygon = polygon[:0]
			for k := 0; k < int(count); k++ {
				index, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				polygon = append(polygon, int(index))
			}

			for k := 1; k+1 < len(polygon); k++ {
				data.Faces = append(data.Faces, polygon[0], polygon[k], polygon[k+1])
			}
		}
	}
	return nil
}

func skipElement(values valueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	count, err := values.read(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := values.read(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// valueReader reads one scalar of the given PLY type
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, a.scanner.Text())
	}
	return value, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	size := typeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported type %q", dataType)
	}
	if _, err := io.ReadFull(b.r, b.buf[:size]); err != nil {
		return 0, err
	}

	buf := b.buf[:size]
	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
