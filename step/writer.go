package step

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deadsy/sdfx/sdf"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"go.uber.org/zap"
)

// originatingSystem names the software that produced the STEP file, per
// AP214's FILE_NAME.originating_system field and ApplicationContext's
// APPLICATION_CONTEXT.application field (see ConvertMesh).
const originatingSystem = "waffle-iron"

// Writer handles STEP file generation
type Writer struct {
	file       *os.File
	writer     *bufio.Writer
	converter  *MeshConverter
	fileName   string
	authorName string
	orgName    string
}

// NewWriter creates a new STEP writer
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &Writer{
		file:       file,
		writer:     bufio.NewWriter(file),
		converter:  NewMeshConverter(),
		fileName:   filepath.Base(path),
		authorName: "waffle-iron User",
		orgName:    "waffle-iron Organization",
	}, nil
}

// SetAuthor sets the author information
func (w *Writer) SetAuthor(name, org string) {
	w.authorName = name
	w.orgName = org
}

// Close closes the writer and flushes any remaining data
func (w *Writer) Close() error {
	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// writeHeader writes the STEP file header
func (w *Writer) writeHeader() error {
	header := []string{
		"ISO-10303-21;",
		"HEADER;",
		"FILE_DESCRIPTION(('STEP AP214'),'1');",
		fmt.Sprintf("FILE_NAME('%s','%s',('%s'),('%s'),'%s STEP Writer','%s','');",
			w.fileName,
			time.Now().Format("2006-01-02T15:04:05"),
			w.authorName,
			w.orgName,
			originatingSystem,
			originatingSystem),
		"FILE_SCHEMA(('AUTOMOTIVE_DESIGN'));",
		"ENDSEC;",
	}

	for _, line := range header {
		if _, err := w.writer.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeData writes the DATA section with entities
func (w *Writer) writeData(entities []Entity) error {
	if _, err := w.writer.WriteString("DATA;\n"); err != nil {
		return err
	}

	for _, entity := range entities {
		str := entity.String()
		// Handle multi-line entities (complex types)
		if strings.Contains(str, "\n") {
			lines := strings.Split(str, "\n")
			for i, line := range lines {
				if i < len(lines)-1 {
					if _, err := w.writer.WriteString(line + "\n"); err != nil {
						return err
					}
				} else {
					if _, err := w.writer.WriteString(line + "\n"); err != nil {
						return err
					}
				}
			}
		} else {
			if _, err := w.writer.WriteString(str + "\n"); err != nil {
				return err
			}
		}
	}

	if _, err := w.writer.WriteString("ENDSEC;\n"); err != nil {
		return err
	}

	return nil
}

// writeFooter writes the STEP file footer
func (w *Writer) writeFooter() error {
	if _, err := w.writer.WriteString("END-ISO-10303-21;\n"); err != nil {
		return err
	}
	return nil
}

// WriteMesh writes a triangle mesh to the STEP file
func (w *Writer) WriteMesh(mesh []*sdf.Triangle3, name string) error {
	telemetry.L().Debug("step: writing mesh", zap.Int("triangles", len(mesh)), zap.String("name", name))

	optimizedMesh := OptimizeMesh(mesh)
	entities := w.converter.ConvertMesh(optimizedMesh, name)
	telemetry.L().Debug("step: converted mesh to entities",
		zap.Int("optimized_triangles", len(optimizedMesh)), zap.Int("entities", len(entities)))

	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.writeData(entities); err != nil {
		return err
	}
	if err := w.writeFooter(); err != nil {
		return err
	}
	return w.writer.Flush()
}

// StreamWriter handles streaming triangle data to STEP file
type StreamWriter struct {
	writer    *Writer
	triangles []*sdf.Triangle3
	wg        *sync.WaitGroup
	input     chan []*sdf.Triangle3
	mutex     sync.Mutex
}

// NewStreamWriter creates a new streaming STEP writer
func NewStreamWriter(path string) (*StreamWriter, chan<- []*sdf.Triangle3, error) {
	writer, err := NewWriter(path)
	if err != nil {
		return nil, nil, err
	}

	input := make(chan []*sdf.Triangle3, 100) // buffered channel

	sw := &StreamWriter{
		writer:    writer,
		triangles: make([]*sdf.Triangle3, 0),
		wg:        new(sync.WaitGroup),
		input:     input,
	}

	// Start goroutine to collect triangles
	sw.wg.Add(1)
	go sw.collect()

	return sw, input, nil
}

// collect gathers triangles from the input channel
func (sw *StreamWriter) collect() {
	defer sw.wg.Done()

	for tris := range sw.input {
		sw.mutex.Lock()
		sw.triangles = append(sw.triangles, tris...)
		total := len(sw.triangles)
		sw.mutex.Unlock()
		telemetry.L().Debug("step: collected triangle batch", zap.Int("batch", len(tris)), zap.Int("total", total))
	}
	telemetry.L().Debug("step: triangle collection complete")
}

// Input returns the input channel for triangles
func (sw *StreamWriter) Input() chan<- []*sdf.Triangle3 {
	return sw.input
}

// SetAuthor sets the author information
func (sw *StreamWriter) SetAuthor(name, org string) {
	sw.writer.SetAuthor(name, org)
}

// Finalize writes the collected triangles to the STEP file
func (sw *StreamWriter) Finalize(name string) error {
	// Close input channel and wait for collection to finish
	close(sw.input)
	sw.wg.Wait()

	// Write mesh to file
	sw.mutex.Lock()
	defer sw.mutex.Unlock()

	telemetry.L().Info("step: finalizing stream", zap.Int("triangles", len(sw.triangles)), zap.String("name", name))
	if err := sw.writer.WriteMesh(sw.triangles, name); err != nil {
		sw.writer.Close()
		return err
	}

	return sw.writer.Close()
}
