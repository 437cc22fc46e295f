package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// MaxFailures caps the failures a FileSource keeps; further failures are
// still counted in Stats.
const MaxFailures = 100

// FileSource implements LogSource for reading from log files.
type FileSource struct {
	files     []string
	extractor *TimestampExtractor

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int

	stats    Stats
	failures []Failure
}

// NewFileSource creates a LogSource that reads the given files in order.
func NewFileSource(files []string, extractor *TimestampExtractor) *FileSource {
	return &FileSource{
		files:     files,
		extractor: extractor,
		fileIndex: -1,
	}
}

// Next returns the next line with a parseable timestamp. Lines that do
// not match the pattern, or whose timestamp fails to parse, are counted
// and skipped. Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*ParsedLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			s.stats.Lines++
			line := s.currentScanner.Text()

			ts, err := s.extractor.Extract(line)
			if errors.Is(err, ErrNoTimestamp) {
				s.stats.Unmatched++
				continue
			}
			if err != nil {
				s.recordFailure(line, ts.Text, err)
				continue
			}

			s.stats.Parsed++
			return &ParsedLine{
				Raw:       line,
				Timestamp: ts.Time,
				Record:    ts.Record,
				Source:    s.currentSource,
				LineNum:   s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

func (s *FileSource) recordFailure(line, text string, err error) {
	s.stats.Failed++
	logrus.WithFields(logrus.Fields{
		"source": s.currentSource,
		"line":   s.currentLine,
		"text":   text,
	}).Debugf("skipping line: %v", err)

	if len(s.failures) < MaxFailures {
		s.failures = append(s.failures, Failure{
			LogLine: LogLine{Content: line, Source: s.currentSource, LineNum: s.currentLine},
			Text:    text,
			Err:     err,
		})
	}
}

// Stats returns the counts so far.
func (s *FileSource) Stats() Stats {
	return s.stats
}

// Failures returns the first MaxFailures lines whose timestamp failed.
func (s *FileSource) Failures() []Failure {
	return s.failures
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	logrus.WithField("source", path).Debug("opened log file")

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	s.currentScanner = nil
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		return err
	}
	return nil
}
